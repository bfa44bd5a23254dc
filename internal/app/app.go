// Package app wires the pipeline together and drives one user flow:
// collect images, submit the batch, poll for completion, surface the report.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruchira-b/ETL-pipeline/internal/artifact"
	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/config"
	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
	"github.com/ruchira-b/ETL-pipeline/internal/session"
	"github.com/ruchira-b/ETL-pipeline/internal/summary"
	"github.com/ruchira-b/ETL-pipeline/internal/tracker"
	"github.com/ruchira-b/ETL-pipeline/internal/uploader"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	uploader   *uploader.Service
	tracker    *tracker.Tracker
	aggregator *summary.Aggregator
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	repos, err := metadata.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// A store that cannot be constructed (missing credentials) is fatal to the
	// uploader only: the batch will fail with zero succeeded keys, but the
	// polling and reporting side stays usable.
	var store artifact.Store
	s3store, err := artifact.NewS3Store(context.Background(), artifact.S3Config{
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		Region:          c.S3Region,
		Bucket:          c.S3Bucket,
		BaseEndpoint:    c.S3BaseEndpoint,
		RequestTimeout:  c.RequestTimeout,
	})
	if err != nil {
		logger.Error(context.Background(), "artifact store unavailable", "error", err)
	} else {
		store = s3store
	}

	up := uploader.NewService(store, logger, uploader.Options{
		Prefix:     c.UploadPrefix,
		ProjectTag: c.ProjectTag,
		MaxItems:   c.MaxBatchSize,
		Workers:    c.UploadWorkers,
	})
	tr := tracker.New(repos.Images(), repos.Summaries(), logger)
	agg := summary.NewAggregator(repos.Images(), repos.Summaries(), logger)

	return &App{config: c, logger: logger, uploader: up, tracker: tr, aggregator: agg}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run drives the single-session flow: upload, then poll, then fetch —
// strictly sequential. Cancellation stops polling; it never rolls back
// already-uploaded items.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	sess := session.New(app.config.UserID)

	items, err := CollectImages(app.config.DataDir)
	if err != nil {
		return fmt.Errorf("collect images: %w", err)
	}

	result, err := app.uploader.Submit(ctx, items, sess.UserID)
	if err != nil {
		return fmt.Errorf("submit batch: %w", err)
	}
	sess.RecordBatch(result)

	app.logger.Info(ctx, "upload phase finished",
		"uploaded", len(result.SucceededKeys),
		"of", result.Requested,
		"discarded", result.Discarded,
	)

	if err := sess.ToAnalysis(); err != nil {
		return fmt.Errorf("nothing to analyze: %w", err)
	}

	poll := app.tracker.Start(ctx, sess.UserID, app.config.MaxWait, app.config.PollInterval)
	for status := range poll.Updates() {
		app.logger.Info(ctx, "processing status",
			"stage", status.Stage.String(),
			"progress", status.Fraction,
		)
	}
	<-poll.Done()

	if ctx.Err() != nil {
		app.logger.Info(ctx, "polling abandoned")
		return ctx.Err()
	}

	final := poll.Final()
	if final.Stage != models.StageComplete {
		// Timeout, not failure: the worker may still be running.
		app.logger.Info(ctx, "processing not finished yet, check later",
			"stage", final.Stage.String())
		return nil
	}

	report, err := app.aggregator.Fetch(ctx, sess.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		app.logger.Warn(ctx, "summary disappeared between poll and fetch")
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}

	if err := app.exportReport(ctx, report); err != nil {
		return err
	}

	fmt.Print(summary.Digest(report))
	return nil
}

func (app *App) exportReport(ctx context.Context, report *models.Report) error {
	f, err := os.Create(app.config.ExportFile)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := summary.WriteJSON(f, report); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	app.logger.Info(ctx, "report exported", "path", app.config.ExportFile)
	return nil
}

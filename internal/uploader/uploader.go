// Package uploader submits a bounded batch of artifacts to the artifact
// store and reports per-item success and failure.
package uploader

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"

	"github.com/ruchira-b/ETL-pipeline/internal/artifact"
	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// DefaultMaxItems bounds a single batch submission.
const DefaultMaxItems = 50

var newStorageID = uuid.NewString

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	// Prefix is the leading key segment for uploaded artifacts ("uploads").
	Prefix string
	// ProjectTag is attached to every object as the "project" metadata value.
	ProjectTag string
	// MaxItems bounds a batch; the excess is discarded and reported.
	MaxItems int
	// Workers bounds concurrent writes per batch.
	Workers int
}

// Service is the batch uploader. Per-item writes are issued concurrently but
// results are collected in input order, so reporting stays deterministic.
type Service struct {
	store   artifact.Store
	logger  logging.Logger
	prefix  string
	project string
	max     int
	workers int
}

func NewService(store artifact.Store, logger logging.Logger, opts Options) *Service {
	if opts.Prefix == "" {
		opts.Prefix = "uploads"
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Service{
		store:   store,
		logger:  logger,
		prefix:  opts.Prefix,
		project: opts.ProjectTag,
		max:     opts.MaxItems,
		workers: opts.Workers,
	}
}

// keyFor derives a collision-resistant storage key. The generated id guards
// against identical filenames across batches and users; the original
// filename is kept for traceability.
func (s *Service) keyFor(userID, filename string) string {
	return path.Join(s.prefix, userID, newStorageID()+"-"+filename)
}

// Submit writes each item to the artifact store under a namespaced key and
// returns per-item accounting. The input is truncated to the batch limit
// before any write occurs; the discarded count is reported, not failed.
// Per-item write failures never abort the batch and are never retried.
func (s *Service) Submit(ctx context.Context, items []models.UploadItem, userID string) (models.BatchResult, error) {

	if s.store == nil {
		return models.BatchResult{}, fmt.Errorf("artifact store not configured: %w", common.ErrConfiguration)
	}

	discarded := 0
	if len(items) > s.max {
		discarded = len(items) - s.max
		items = items[:s.max]
		s.logger.Warn(ctx, "batch truncated", "limit", s.max, "discarded", discarded)
	}

	result := models.BatchResult{Requested: len(items), Discarded: discarded}

	keys := make([]string, len(items))
	failures := make([]error, len(items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

	for i, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item models.UploadItem) {
			defer wg.Done()
			defer func() { <-sem }()

			key := s.keyFor(userID, item.Filename)
			contentType := item.ContentType
			if contentType == "" {
				contentType = artifact.ContentTypeFor(item.Filename)
			}

			err := s.store.Put(ctx, key, item.Data, contentType, map[string]string{
				"uploaded-by": userID,
				"project":     s.project,
			})
			if err != nil {
				failures[i] = err
				return
			}
			keys[i] = key
		}(i, item)
	}
	wg.Wait()

	// Collect in input order for reproducible reporting.
	for i, item := range items {
		if failures[i] != nil {
			result.FailedCount++
			s.logger.Warn(ctx, "upload failed", "filename", item.Filename, "error", failures[i])
			continue
		}
		result.SucceededKeys = append(result.SucceededKeys, keys[i])
	}

	s.logger.Info(ctx, "batch uploaded",
		"user_id", userID,
		"requested", result.Requested,
		"succeeded", len(result.SucceededKeys),
		"failed", result.FailedCount,
		"discarded", result.Discarded,
	)

	return result, nil
}

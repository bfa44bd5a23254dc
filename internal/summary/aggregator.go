// Package summary assembles the per-user analysis report from the metadata
// store and derives its export views.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/images"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/summaries"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// Aggregator fetches the precomputed summary plus its two breakdowns.
// It never caches: every call re-reads current store state.
type Aggregator struct {
	images    images.Repository
	summaries summaries.Repository
	logger    logging.Logger
}

func NewAggregator(img images.Repository, sum summaries.Repository, logger logging.Logger) *Aggregator {
	return &Aggregator{images: img, summaries: sum, logger: logger}
}

// Fetch returns the assembled report for the user, or common.ErrorNotFound
// while the worker has not produced a summary row yet. Callers should have
// confirmed completion first, or treat ErrorNotFound as "not ready".
func (a *Aggregator) Fetch(ctx context.Context, userID string) (*models.Report, error) {
	s, err := a.summaries.Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}

	daily, err := a.images.DailyCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch daily counts: %w", err)
	}

	types, err := a.images.TypeCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch type counts: %w", err)
	}

	a.logger.Debug(ctx, "report assembled",
		"user_id", userID,
		"total_photos", s.TotalPhotos,
		"days", len(daily),
		"types", len(types),
	)

	return &models.Report{Summary: *s, DailyCounts: daily, TypeCounts: types}, nil
}

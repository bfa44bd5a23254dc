package images

import (
	"context"

	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// Repository reads the per-item image_metadata records populated by the
// external processing worker. This system never writes them.
type Repository interface {
	// ProcessedCount returns how many of the user's items the worker has
	// recorded so far.
	ProcessedCount(ctx context.Context, userID string) (int64, error)

	// DailyCounts returns the per-day upload counts for the user, ordered by
	// calendar date.
	DailyCounts(ctx context.Context, userID string) ([]models.DailyCount, error)

	// TypeCounts returns the content-type distribution for the user, most
	// frequent first.
	TypeCounts(ctx context.Context, userID string) ([]models.TypeCount, error)
}

package summaries

import (
	"context"

	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// Repository reads the per-user photo_wrapped_summary records maintained by
// the external analysis worker. This system never writes them.
type Repository interface {
	// Exists reports whether a summary row is present for the user.
	Exists(ctx context.Context, userID string) (bool, error)

	// Get returns the user's summary row, or common.ErrorNotFound when the
	// worker has not produced one yet.
	Get(ctx context.Context, userID string) (*models.Summary, error)
}

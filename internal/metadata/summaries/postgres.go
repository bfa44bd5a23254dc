// Package summaries provides the PostgreSQL-backed read repository for the
// per-user precomputed analysis summaries.
package summaries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/dbx"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("photo_wrapped_summary").
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Summary, error) {
	query, args, err := psql.
		Select("total_photos", "first_date", "last_date",
			"busiest_day", "busiest_day_count", "avg_photos_per_day").
		From("photo_wrapped_summary").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	s := &models.Summary{UserID: userID}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.TotalPhotos, &s.FirstDate, &s.LastDate,
		&s.BusiestDay, &s.BusiestDayCount, &s.AvgPhotosPerDay,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

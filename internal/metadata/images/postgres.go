// Package images provides the PostgreSQL-backed read repository for the
// per-item image metadata populated by the external processing worker.
package images

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

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

func (r *PostgresRepository) ProcessedCount(ctx context.Context, userID string) (int64, error) {
	query, args, err := psql.
		Select("count(*)").
		From("image_metadata").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DailyCounts(ctx context.Context, userID string) ([]models.DailyCount, error) {
	query, args, err := psql.
		Select("upload_time::date AS day", "count(*) AS photos").
		From("image_metadata").
		Where(sq.Eq{"user_id": userID}).
		GroupBy("upload_time::date").
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select daily counts: %w", err)
	}
	defer rows.Close()

	var result []models.DailyCount
	for rows.Next() {
		var dc models.DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		result = append(result, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) TypeCounts(ctx context.Context, userID string) ([]models.TypeCount, error) {
	query, args, err := psql.
		Select("content_type", "count(*) AS photos").
		From("image_metadata").
		Where(sq.Eq{"user_id": userID}).
		GroupBy("content_type").
		OrderBy("photos DESC", "content_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select type counts: %w", err)
	}
	defer rows.Close()

	var result []models.TypeCount
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.ContentType, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		result = append(result, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

package metadata

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ruchira-b/ETL-pipeline/internal/metadata/images"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/migrations"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/summaries"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	images    images.Repository
	summaries summaries.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Images() images.Repository {
	return m.images
}

func (m *PostgresRepositoryManager) Summaries() summaries.Repository {
	return m.summaries
}

// RunMigrations materializes the two external read models locally. In
// production both tables are owned and populated by the processing worker;
// the migrations only make a fresh development database usable.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		images:    images.NewPostgresRepository(db),
		summaries: summaries.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

// Package metadata wires the relational metadata store: connection handling,
// schema migrations, and access to the per-entity read repositories.
package metadata

import (
	"context"
	"database/sql"

	"github.com/ruchira-b/ETL-pipeline/internal/metadata/images"
	"github.com/ruchira-b/ETL-pipeline/internal/metadata/summaries"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Images() images.Repository
	Summaries() summaries.Repository
}

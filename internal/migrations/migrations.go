package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/FactoryScout/internal/db"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
)

//go:embed 001_registry_factories.sql
var mig001 string

// RunMigrations brings the registry schema up to date.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	return db.RunMigrations(log, sqlDB, []db.Migration{
		{
			ID:  "001_registry_factories.sql",
			SQL: mig001,
		},
	})
}

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/FactoryScout/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	UpSeparator   = "-- +migrate Up"
	DownSeparator = "-- +migrate Down"
)

// Migration is a single SQL script holding a Down section followed by an Up section.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrations applies every pending migration in order.
func RunMigrations(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, UpSeparator)
		if !found {
			return fmt.Errorf("migration %s missing '%s' separator", m.ID, UpSeparator)
		}

		if idx := strings.Index(down, DownSeparator); idx != -1 {
			down = down[idx+len(DownSeparator):]
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(db, "sqlite3", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to run migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Infow("migrations applied", "applied", applied, "known", len(ids))
	return nil
}

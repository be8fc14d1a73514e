package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/common"
	"github.com/goran-ethernal/FactoryScout/internal/db"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	"github.com/goran-ethernal/FactoryScout/internal/metrics"
	"github.com/goran-ethernal/FactoryScout/internal/migrations"
	"github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/config"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/russross/meddler"
)

const (
	factoriesTable = "factories"
	metricsDBName  = "registry"
)

// Factory is a discovered factory as stored in the registry.
type Factory struct {
	Address       ethcommon.Address `meddler:"address,address"`
	Kind          string            `meddler:"kind"`
	CreationBlock uint64            `meddler:"creation_block"`
	Fee           uint32            `meddler:"fee"`
	AMMs          uint64            `meddler:"amms"`
	UpdatedBlock  uint64            `meddler:"updated_block"`
}

// Record converts the row back into a factory record.
func (f *Factory) Record() (factory.Record, error) {
	kind, err := factory.ParseKind(f.Kind)
	if err != nil {
		return factory.Record{}, err
	}

	rec, err := factory.NewRecord(kind, f.Address, f.CreationBlock)
	if err != nil {
		return factory.Record{}, err
	}
	if rec.UniswapV2 != nil {
		rec.UniswapV2.Fee = f.Fee
	}

	return rec, nil
}

// Registry is a SQLite copy of the discovery checkpoint for consumers that query with SQL.
type Registry struct {
	db  *sql.DB
	log *logger.Logger
}

// New opens the registry database described by cfg and migrates it to the current schema.
func New(cfg config.DatabaseConfig, log *logger.Logger) (*Registry, error) {
	log = log.WithComponent(common.ComponentRegistry)

	sqlDB, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Registry{db: sqlDB, log: log}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Sync replaces the registry contents with counts, recorded as of lastBlock, in one transaction.
func (r *Registry) Sync(ctx context.Context, counts []checkpoint.FactoryCount, lastBlock uint64) (err error) {
	defer observe("sync", time.Now(), &err)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Errorw("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM factories"); err != nil {
		return fmt.Errorf("failed to clear factories: %w", err)
	}

	for _, fc := range counts {
		row := &Factory{
			Address:       fc.Factory.Address,
			Kind:          fc.Factory.Kind.String(),
			CreationBlock: fc.Factory.CreationBlock,
			Fee:           fc.Factory.Fee(),
			AMMs:          fc.AMMs,
			UpdatedBlock:  lastBlock,
		}
		if err := meddler.Insert(tx, factoriesTable, row); err != nil {
			return fmt.Errorf("failed to insert factory %s: %w", row.Address.Hex(), err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO registry_state (id, last_block, synced_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_block = excluded.last_block, synced_at = excluded.synced_at
	`, lastBlock, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to update registry state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Infow("registry synced", "factories", len(counts), "last_block", lastBlock)
	return nil
}

// List returns the factories with at least minAMMs AMMs, most productive first.
// A non-empty kind restricts the result to that kind.
func (r *Registry) List(ctx context.Context, minAMMs uint64, kind string) (_ []*Factory, err error) {
	defer observe("list", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := "SELECT * FROM factories WHERE amms >= ?"
	args := []any{minAMMs}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY amms DESC, address ASC"

	var rows []*Factory
	if err := meddler.QueryAll(r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list factories: %w", err)
	}

	return rows, nil
}

// LastBlock returns the checkpoint block of the last sync and false if the registry was never synced.
func (r *Registry) LastBlock(ctx context.Context) (uint64, bool, error) {
	var lastBlock uint64
	err := r.db.QueryRowContext(ctx, "SELECT last_block FROM registry_state WHERE id = 1").Scan(&lastBlock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read registry state: %w", err)
	}

	return lastBlock, true, nil
}

func observe(operation string, start time.Time, err *error) {
	metrics.DBQueryInc(metricsDBName, operation)
	metrics.DBQueryDuration(metricsDBName, operation, time.Since(start))
	if *err != nil {
		metrics.DBErrorsInc(metricsDBName, operation)
	}
}

package registry

import (
	"context"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	"github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/config"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/stretchr/testify/require"
)

var (
	v2Factory = ethcommon.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	v3Factory = ethcommon.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")
	sushi     = ethcommon.HexToAddress("0xC0AEe478e3658e2610c5F7A4A2E1777cE9e4f2Ac")
)

func newTestRegistry(t *testing.T) (*Registry, config.DatabaseConfig) {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "registry.db")}
	cfg.ApplyDefaults()

	r, err := New(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	return r, cfg
}

func count(t *testing.T, kind factory.Kind, addr ethcommon.Address, block, amms uint64) checkpoint.FactoryCount {
	t.Helper()

	rec, err := factory.NewRecord(kind, addr, block)
	require.NoError(t, err)
	return checkpoint.FactoryCount{Factory: rec, AMMs: amms}
}

func TestRegistry_SyncAndList(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	_, synced, err := r.LastBlock(ctx)
	require.NoError(t, err)
	require.False(t, synced)

	counts := []checkpoint.FactoryCount{
		count(t, factory.KindUniswapV2, v2Factory, 10000835, 300000),
		count(t, factory.KindUniswapV3, v3Factory, 12369621, 20000),
		count(t, factory.KindUniswapV2, sushi, 10794229, 3),
	}
	require.NoError(t, r.Sync(ctx, counts, 18000000))

	lastBlock, synced, err := r.LastBlock(ctx)
	require.NoError(t, err)
	require.True(t, synced)
	require.Equal(t, uint64(18000000), lastBlock)

	all, err := r.List(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, v2Factory, all[0].Address)
	require.Equal(t, v3Factory, all[1].Address)
	require.Equal(t, sushi, all[2].Address)
	require.Equal(t, factory.DefaultUniswapV2Fee, all[0].Fee)
	require.Zero(t, all[1].Fee)
	require.Equal(t, uint64(18000000), all[0].UpdatedBlock)

	rec, err := all[0].Record()
	require.NoError(t, err)
	require.Equal(t, counts[0].Factory, rec)

	filtered, err := r.List(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	v3Only, err := r.List(ctx, 0, factory.KindUniswapV3.String())
	require.NoError(t, err)
	require.Len(t, v3Only, 1)
	require.Equal(t, v3Factory, v3Only[0].Address)
}

func TestRegistry_SyncReplacesPreviousSnapshot(t *testing.T) {
	r, cfg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.Sync(ctx, []checkpoint.FactoryCount{
		count(t, factory.KindUniswapV2, v2Factory, 1, 1),
		count(t, factory.KindUniswapV3, v3Factory, 2, 1),
	}, 100))

	require.NoError(t, r.Sync(ctx, []checkpoint.FactoryCount{
		count(t, factory.KindUniswapV2, v2Factory, 1, 7),
	}, 200))

	rows, err := r.List(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint64(7), rows[0].AMMs)
	require.Equal(t, uint64(200), rows[0].UpdatedBlock)

	// Reopening keeps the data and does not re-apply migrations
	require.NoError(t, r.Close())
	reopened, err := New(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	lastBlock, _, err := reopened.LastBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(200), lastBlock)
}

func TestRegistry_SyncCancelledContext(t *testing.T) {
	r, _ := newTestRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Sync(ctx, []checkpoint.FactoryCount{count(t, factory.KindUniswapV2, v2Factory, 1, 1)}, 1)
	require.ErrorIs(t, err, context.Canceled)

	rows, err := r.List(context.Background(), 0, "")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestFactory_RecordRejectsUnknownKind(t *testing.T) {
	f := &Factory{Address: v2Factory, Kind: "curve"}
	_, err := f.Record()
	require.Error(t, err)
}

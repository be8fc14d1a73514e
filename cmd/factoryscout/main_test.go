package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/checkpoint"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	"github.com/goran-ethernal/FactoryScout/internal/registry"
	pkgconfig "github.com/goran-ethernal/FactoryScout/pkg/config"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/stretchr/testify/require"
)

var v2Factory = ethcommon.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")

func TestKindsCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"kinds"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "uniswap_v2")
	require.Contains(t, out.String(), factory.PairCreatedSignature.Hex())
	require.Contains(t, out.String(), "uniswap_v3")
	require.Contains(t, out.String(), factory.PoolCreatedSignature.Hex())
}

func TestPrintFactories(t *testing.T) {
	v2, err := factory.NewRecord(factory.KindUniswapV2, v2Factory, 10000835)
	require.NoError(t, err)
	v3, err := factory.NewRecord(factory.KindUniswapV3, ethcommon.HexToAddress("0x1"), 12369621)
	require.NoError(t, err)

	var out bytes.Buffer
	printFactories(&out, []factory.Record{v2, v3}, 5)

	require.Equal(t, "Found 2 factories with at least 5 AMMs:\n"+
		"  - uniswap_v2 "+v2Factory.Hex()+" (created at block 10000835, fee 300)\n"+
		"  - uniswap_v3 0x0000000000000000000000000000000000000001 (created at block 12369621)\n",
		out.String())
}

func TestExportCheckpoint(t *testing.T) {
	dir := t.TempDir()

	cfg := &pkgconfig.Config{
		Discovery: pkgconfig.DiscoveryConfig{
			CheckpointPath: filepath.Join(dir, "factories.json"),
			AMMThreshold:   1,
		},
		Registry: &pkgconfig.DatabaseConfig{Path: filepath.Join(dir, "registry.db")},
	}
	cfg.Registry.ApplyDefaults()

	idle := ethcommon.HexToAddress("0x2")

	store := checkpoint.New(cfg.Discovery.CheckpointPath, logger.NewNopLogger())
	rec, err := factory.NewRecord(factory.KindUniswapV2, v2Factory, 10)
	require.NoError(t, err)
	store.AddFactory(v2Factory, rec)
	store.IncAMMs(v2Factory)
	idleRec, err := factory.NewRecord(factory.KindUniswapV3, idle, 20)
	require.NoError(t, err)
	store.AddFactory(idle, idleRec)
	store.SetLastBlock(77)
	require.NoError(t, store.Save())

	var out bytes.Buffer
	require.NoError(t, exportCheckpoint(context.Background(), &out, cfg))
	require.Contains(t, out.String(), "last block 77")
	require.Contains(t, out.String(), "Found 1 factories with at least 1 AMMs:\n"+
		"  - uniswap_v2 "+v2Factory.Hex()+" (created at block 10, fee 300)\n")
	require.NotContains(t, out.String(), idle.Hex())

	reg, err := registry.New(*cfg.Registry, logger.NewNopLogger())
	require.NoError(t, err)
	defer reg.Close()

	rows, err := reg.List(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, v2Factory, rows[0].Address)
	require.Equal(t, uint64(1), rows[0].AMMs)
	require.Equal(t, idle, rows[1].Address)
	require.Zero(t, rows[1].AMMs)
}

func TestExportCheckpoint_Errors(t *testing.T) {
	dir := t.TempDir()

	err := exportCheckpoint(context.Background(), &bytes.Buffer{}, &pkgconfig.Config{})
	require.ErrorContains(t, err, "registry is not configured")

	cfg := &pkgconfig.Config{
		Discovery: pkgconfig.DiscoveryConfig{CheckpointPath: filepath.Join(dir, "missing.json")},
		Registry:  &pkgconfig.DatabaseConfig{Path: filepath.Join(dir, "registry.db")},
	}
	cfg.Registry.ApplyDefaults()

	require.Error(t, exportCheckpoint(context.Background(), &bytes.Buffer{}, cfg))
}

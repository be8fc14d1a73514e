package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/stretchr/testify/require"
)

var (
	v2Factory = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	v3Factory = common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")
)

func newRecord(t *testing.T, kind factory.Kind, addr common.Address, block uint64) factory.Record {
	t.Helper()

	rec, err := factory.NewRecord(kind, addr, block)
	require.NoError(t, err)
	return rec
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factories.json")

	s := LoadOrDefault(path, logger.NewNopLogger())
	require.Equal(t, path, s.Path())
	require.Equal(t, uint64(0), s.LastBlock())
	require.Empty(t, s.Factories())

	// Nothing is written until Save
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "invalid bytes", content: []byte{0xff, 0x00, 0x13, 0x37}},
		{name: "truncated json", content: []byte(`{"last_block": 12, "factories": {`)},
		{name: "wrong types", content: []byte(`{"last_block": "twelve"}`)},
		{
			name: "key does not match record",
			content: []byte(`{"last_block": 5, "factories": {
				"0x0000000000000000000000000000000000000001": {
					"factory": {"kind": "uniswap_v3", "address": "0x0000000000000000000000000000000000000002",
						"creation_block": 1, "uniswap_v3": {}},
					"amms": 3
				}}}`),
		},
		{
			name: "unknown kind",
			content: []byte(`{"last_block": 5, "factories": {
				"0x0000000000000000000000000000000000000001": {
					"factory": {"kind": "curve", "address": "0x0000000000000000000000000000000000000001"},
					"amms": 3
				}}}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "factories.json")
			require.NoError(t, os.WriteFile(path, tt.content, 0o600))

			_, err := Load(path, logger.NewNopLogger())
			require.ErrorIs(t, err, pkgcheckpoint.ErrStorage)

			s := LoadOrDefault(path, logger.NewNopLogger())
			require.Equal(t, uint64(0), s.LastBlock())
			require.Empty(t, s.Factories())
			require.Equal(t, path, s.Path())
		})
	}
}

func TestFileStore_AddAndIncrement(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "factories.json"), logger.NewNopLogger())

	// Unknown address: no effect
	require.False(t, s.IncAMMs(v2Factory))
	require.Equal(t, 0, s.Len())

	s.AddFactory(v2Factory, newRecord(t, factory.KindUniswapV2, v2Factory, 100))
	fc, ok := s.Get(v2Factory)
	require.True(t, ok)
	require.Equal(t, uint64(0), fc.AMMs)

	require.True(t, s.IncAMMs(v2Factory))
	require.True(t, s.IncAMMs(v2Factory))

	fc, ok = s.Get(v2Factory)
	require.True(t, ok)
	require.Equal(t, uint64(2), fc.AMMs)

	// Re-adding a known address keeps the original record and count
	s.AddFactory(v2Factory, newRecord(t, factory.KindUniswapV3, v2Factory, 999))
	fc, _ = s.Get(v2Factory)
	require.Equal(t, factory.KindUniswapV2, fc.Factory.Kind)
	require.Equal(t, uint64(100), fc.Factory.CreationBlock)
	require.Equal(t, uint64(2), fc.AMMs)
}

func TestFileStore_FactoriesIsSnapshot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "factories.json"), logger.NewNopLogger())
	s.AddFactory(v3Factory, newRecord(t, factory.KindUniswapV3, v3Factory, 1))

	snapshot := s.Factories()
	require.Len(t, snapshot, 1)

	s.IncAMMs(v3Factory)
	snapshot[0].AMMs = 100

	fc, _ := s.Get(v3Factory)
	require.Equal(t, uint64(1), fc.AMMs)
	require.Equal(t, uint64(100), snapshot[0].AMMs)
}

func TestFileStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "factories.json")

	s := LoadOrDefault(path, logger.NewNopLogger())
	s.AddFactory(v2Factory, newRecord(t, factory.KindUniswapV2, v2Factory, 10000835))
	s.AddFactory(v3Factory, newRecord(t, factory.KindUniswapV3, v3Factory, 12369621))
	for range 3 {
		s.IncAMMs(v2Factory)
	}
	s.IncAMMs(v3Factory)
	s.SetLastBlock(12370000)

	require.NoError(t, s.Save())

	reloaded, err := Load(path, logger.NewNopLogger())
	require.NoError(t, err)
	require.Equal(t, uint64(12370000), reloaded.LastBlock())
	require.ElementsMatch(t, s.Factories(), reloaded.Factories())

	fc, ok := reloaded.Get(v2Factory)
	require.True(t, ok)
	require.Equal(t, uint64(3), fc.AMMs)
	require.Equal(t, factory.DefaultUniswapV2Fee, fc.Factory.Fee())

	// No temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "factories.json", entries[0].Name())
}

func TestFileStore_SaveOverwritesPreviousCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factories.json")

	s := New(path, logger.NewNopLogger())
	s.SetLastBlock(100)
	require.NoError(t, s.Save())

	s.SetLastBlock(200)
	s.AddFactory(v3Factory, newRecord(t, factory.KindUniswapV3, v3Factory, 150))
	require.NoError(t, s.Save())

	reloaded := LoadOrDefault(path, logger.NewNopLogger())
	require.Equal(t, uint64(200), reloaded.LastBlock())
	require.Equal(t, 1, reloaded.Len())
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()

	// The checkpoint path is an existing directory, so the final rename fails
	path := filepath.Join(dir, "factories.json")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o755))

	s := New(path, logger.NewNopLogger())
	s.SetLastBlock(1)

	err := s.Save()
	require.ErrorIs(t, err, pkgcheckpoint.ErrStorage)

	// The failed save leaves no temporary file next to the target
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFilter(t *testing.T) {
	a := common.HexToAddress("0xa")
	b := common.HexToAddress("0xb")
	c := common.HexToAddress("0xc")

	s := New(filepath.Join(t.TempDir(), "factories.json"), logger.NewNopLogger())
	for addr, amms := range map[common.Address]int{a: 3, b: 10, c: 10} {
		s.AddFactory(addr, newRecord(t, factory.KindUniswapV2, addr, 1))
		for range amms {
			s.IncAMMs(addr)
		}
	}

	filtered := pkgcheckpoint.Filter(s.Factories(), 10)
	require.Len(t, filtered, 2)

	addrs := []common.Address{filtered[0].Address, filtered[1].Address}
	require.ElementsMatch(t, []common.Address{b, c}, addrs)

	require.Len(t, pkgcheckpoint.Filter(s.Factories(), 0), 3)
	require.Empty(t, pkgcheckpoint.Filter(s.Factories(), 11))
}

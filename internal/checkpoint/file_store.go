package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
)

// Compile-time check to ensure FileStore implements pkgcheckpoint.Store interface.
var _ pkgcheckpoint.Store = (*FileStore)(nil)

// FileStore keeps the whole checkpoint in memory and persists it as a single JSON file.
// It is owned by one discovery run at a time and is not safe for concurrent use.
type FileStore struct {
	path  string
	entry pkgcheckpoint.Entry
	log   *logger.Logger
}

// New creates an empty store bound to path. Nothing is written until Save.
func New(path string, log *logger.Logger) *FileStore {
	return &FileStore{
		path:  path,
		entry: pkgcheckpoint.NewEntry(),
		log:   log,
	}
}

// Load reads and validates the checkpoint at path.
func Load(path string, log *logger.Logger) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read checkpoint: %w", pkgcheckpoint.ErrStorage, err)
	}

	entry, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode checkpoint %s: %w", pkgcheckpoint.ErrStorage, path, err)
	}

	return &FileStore{
		path:  path,
		entry: entry,
		log:   log,
	}, nil
}

// LoadOrDefault loads the checkpoint at path, falling back to an empty store bound to path
// if the file is missing or cannot be decoded. It never fails: starting over from
// block zero is always a valid recovery.
func LoadOrDefault(path string, log *logger.Logger) *FileStore {
	s, err := Load(path, log)
	if err == nil {
		log.Infow("checkpoint loaded",
			"path", path,
			"last_block", s.entry.LastBlock,
			"factories", len(s.entry.Factories),
		)
		return s
	}

	if errors.Is(err, fs.ErrNotExist) {
		log.Infow("no checkpoint found, starting from scratch", "path", path)
	} else {
		checkpointLoadFailuresInc()
		log.Warnw("discarding unreadable checkpoint, starting from scratch", "path", path, "error", err)
	}

	return New(path, log)
}

// Path returns the file the store persists to.
func (s *FileStore) Path() string {
	return s.path
}

// LastBlock returns the block the next scan resumes at.
func (s *FileStore) LastBlock() uint64 {
	return s.entry.LastBlock
}

// SetLastBlock sets the resume block.
func (s *FileStore) SetLastBlock(block uint64) {
	s.entry.LastBlock = block
}

// Len returns the number of known factories.
func (s *FileStore) Len() int {
	return len(s.entry.Factories)
}

// Factories returns a copy of every known factory with its AMM count.
func (s *FileStore) Factories() []pkgcheckpoint.FactoryCount {
	counts := make([]pkgcheckpoint.FactoryCount, 0, len(s.entry.Factories))
	for _, fc := range s.entry.Factories {
		counts = append(counts, *fc)
	}
	return counts
}

// Get returns the factory registered at address.
func (s *FileStore) Get(address common.Address) (pkgcheckpoint.FactoryCount, bool) {
	fc, ok := s.entry.Factories[address]
	if !ok {
		return pkgcheckpoint.FactoryCount{}, false
	}
	return *fc, true
}

// AddFactory registers record under address with zero AMMs.
// A known address keeps its existing record and count.
func (s *FileStore) AddFactory(address common.Address, record factory.Record) {
	if _, exists := s.entry.Factories[address]; exists {
		s.log.Debugw("factory already registered, ignoring", "address", address.Hex())
		return
	}

	s.entry.Factories[address] = &pkgcheckpoint.FactoryCount{Factory: record}
}

// IncAMMs increments the AMM count of the factory at address.
// It returns false, changing nothing, if the address is unknown.
func (s *FileStore) IncAMMs(address common.Address) bool {
	fc, ok := s.entry.Factories[address]
	if !ok {
		return false
	}

	fc.AMMs++
	return true
}

// Save writes the checkpoint to a temporary file next to the target and renames it
// into place, so readers only ever observe a complete old or new checkpoint.
func (s *FileStore) Save() error {
	start := time.Now()

	data, err := json.Marshal(s.entry)
	if err != nil {
		checkpointSaveErrorsInc()
		return fmt.Errorf("%w: failed to encode checkpoint: %w", pkgcheckpoint.ErrStorage, err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		checkpointSaveErrorsInc()
		return fmt.Errorf("%w: %w", pkgcheckpoint.ErrStorage, err)
	}

	checkpointSaveLog(time.Since(start), len(data))

	s.log.Debugw("checkpoint saved",
		"path", s.path,
		"last_block", s.entry.LastBlock,
		"factories", len(s.entry.Factories),
		"bytes", len(data),
	)

	return nil
}

func decode(data []byte) (pkgcheckpoint.Entry, error) {
	var entry pkgcheckpoint.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return pkgcheckpoint.Entry{}, err
	}

	if entry.Factories == nil {
		entry.Factories = make(map[common.Address]*pkgcheckpoint.FactoryCount)
	}

	for addr, fc := range entry.Factories {
		if fc == nil {
			return pkgcheckpoint.Entry{}, fmt.Errorf("factory %s: missing entry", addr.Hex())
		}
		if fc.Factory.Address != addr {
			return pkgcheckpoint.Entry{}, fmt.Errorf("factory %s: record address %s does not match key",
				addr.Hex(), fc.Factory.Address.Hex())
		}
		if err := fc.Factory.Validate(); err != nil {
			return pkgcheckpoint.Entry{}, err
		}
	}

	return entry, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint: %w", err)
	}
	tmpPath := tmp.Name()

	// Remove the temporary file on any failure path; after a successful rename this is a no-op.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary checkpoint: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}

	return nil
}

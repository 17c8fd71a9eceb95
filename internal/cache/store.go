package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store abstracts the key-value storage behind the review cache so tests
// can substitute an in-memory implementation for the on-disk one.
type Store interface {
	// Get returns the raw entry bytes for a key, or false when no entry
	// exists or it cannot be read.
	Get(key string) ([]byte, bool)
	// Put writes the raw entry bytes for a key, overwriting any previous
	// value.
	Put(key string, data []byte) error
}

const entryExt = ".json"

// DirStore keeps one <key>.json file per cache entry in a single
// directory.
type DirStore struct {
	dir string
}

// NewDirStore ensures dir exists and returns a store backed by it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the backing directory path.
func (s *DirStore) Dir() string {
	return s.dir
}

func (s *DirStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.entryPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *DirStore) Put(key string, data []byte) error {
	return os.WriteFile(s.entryPath(key), data, 0o644)
}

// Stats describes the current state of the on-disk store.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
}

// Stats counts the entries currently on disk.
func (s *DirStore) Stats() (Stats, error) {
	stats := Stats{Dir: s.dir}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != entryExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// Clear removes all entry files. The cache itself never deletes entries;
// this exists for the explicit `cache clear` CLI command.
func (s *DirStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == entryExt {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return fmt.Errorf("removing cache entry %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func (s *DirStore) entryPath(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}

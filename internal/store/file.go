package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore keeps one JSON file per key under a base directory. Namespace
// separators in keys map to subdirectories, so "day:2026-02-27" is stored
// at <base>/day/2026-02-27.json.
type FileStore struct {
	base string
}

// NewFileStore creates a FileStore rooted at base, creating the directory
// if needed.
func NewFileStore(base string) (*FileStore, error) {
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating base directory: %w", err)
	}
	return &FileStore{base: base}, nil
}

// path maps a key to its file path.
func (s *FileStore) path(key string) string {
	parts := strings.Split(key, ":")
	parts[len(parts)-1] += ".json"
	return filepath.Join(append([]string{s.base}, parts...)...)
}

// key maps a file path back to its key.
func (s *FileStore) key(path string) string {
	rel, err := filepath.Rel(s.base, path)
	if err != nil {
		return ""
	}
	rel = strings.TrimSuffix(rel, ".json")
	return strings.Join(strings.Split(rel, string(filepath.Separator)), ":")
}

func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage error reading %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes atomically: temp file in the same directory, then rename.
func (s *FileStore) Set(key string, value []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error deleting %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		if key := s.key(path); key != "" && strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage error listing keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Close() error { return nil }

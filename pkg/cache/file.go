package cache

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON file per key in a directory. It is the CLI
// default and the only store whose contents a user can inspect by hand.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir. The directory is
// created on first write, so a store that is only read or cleared leaves
// no trace on disk.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrNoDir
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (c *FileStore) Dir() string { return c.dir }

// Location implements Describer.
func (c *FileStore) Location() string { return c.dir }

// Get reads the file for key.
func (c *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrInvalidKey
	}
	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes data for key. The file is written next to its destination and
// renamed into place, so a concurrent reader sees either the old document
// or the new one.
func (c *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Clear removes the store directory recursively.
func (c *FileStore) Clear(ctx context.Context) error {
	return os.RemoveAll(c.dir)
}

// Close does nothing for file store.
func (c *FileStore) Close() error {
	return nil
}

// path maps a key to its file. Keys are path-escaped so package names can
// never address a file outside the directory.
func (c *FileStore) path(key string) string {
	return filepath.Join(c.dir, url.PathEscape(key)+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)

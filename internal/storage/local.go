package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in a directory on the local filesystem.  The same
// directory is served read-only under the uploads URL path.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the uploads directory if needed and returns a store
// rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalStore) Remove(_ context.Context, filename string) error {
	p := filepath.Join(s.dir, filepath.Base(filename))
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return ErrAssetNotFound
		}
		return err
	}
	return os.Remove(p)
}

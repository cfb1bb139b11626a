package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const fileExt = ".json"

// Dir keeps each overlay in <root>/<name>.json.
type Dir struct {
	root string
}

// NewDir creates a directory backend, creating root if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

// Root returns the directory holding the overlay files.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the file path for an overlay name.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name+fileExt)
}

func (d *Dir) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the overlay atomically: the data goes to a temp file in the
// same directory which is then renamed over the target.
func (d *Dir) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, "."+name+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, d.Path(name)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (d *Dir) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *Dir) Close() error { return nil }

// Verify Dir implements Backend at compile time.
var _ Backend = (*Dir)(nil)

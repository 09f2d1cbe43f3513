package diskstore

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
)

const tempPrefix = ".upload-"

var (
	ErrBlobExists = errors.New("blob already exists")
	errNotPartial = errors.New("not a partial upload")
)

// DiskStore implements port.BlobStore on the local filesystem as
// root/<category>/<name>.
type DiskStore struct {
	root  string
	fsync bool
}

var _ port.BlobStore = (*DiskStore)(nil)

// New creates the root directory if needed.
func New(root string, fsync bool) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{root: filepath.Clean(root), fsync: fsync}, nil
}

// Root returns the directory served as static content.
func (d *DiskStore) Root() string {
	return d.root
}

func (d *DiskStore) path(category domain.Category, name string) (string, error) {
	if err := domain.ValidateStoredName(name); err != nil {
		return "", err
	}
	return filepath.Join(d.root, string(category), name), nil
}

// Put streams into a temp file in the category directory and links it into
// place, so a reader never observes a partially written file and an existing
// name is never overwritten.
func (d *DiskStore) Put(ctx context.Context, category domain.Category, name string, reader io.Reader) (int64, uint32, error) {
	target, err := d.path(category, name)
	if err != nil {
		return 0, 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, 0, fmt.Errorf("create category dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return 0, 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	hasher := crc32.NewIEEE()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), reader)
	if err != nil {
		_ = tmp.Close()
		if errors.Is(err, domain.ErrValidation) {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("write file: %w", err)
	}
	if d.fsync {
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return 0, 0, fmt.Errorf("sync file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, fmt.Errorf("close file: %w", err)
	}

	if err := os.Link(tmpPath, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, 0, fmt.Errorf("%w: %s", ErrBlobExists, name)
		}
		return 0, 0, fmt.Errorf("publish file: %w", err)
	}

	return written, hasher.Sum32(), nil
}

func (d *DiskStore) Exists(ctx context.Context, category domain.Category, name string) (bool, error) {
	p, err := d.path(category, name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (d *DiskStore) Delete(ctx context.Context, category domain.Category, name string) error {
	p, err := d.path(category, name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// List returns regular files in the category directory. In-flight temp files
// are skipped.
func (d *DiskStore) List(ctx context.Context, category domain.Category) ([]port.BlobInfo, error) {
	return d.scan(category, false)
}

// ListPartial returns the temp files Put streams into. One that is old enough
// belongs to an upload that never finished.
func (d *DiskStore) ListPartial(ctx context.Context, category domain.Category) ([]port.BlobInfo, error) {
	return d.scan(category, true)
}

func (d *DiskStore) RemovePartial(ctx context.Context, category domain.Category, name string) error {
	if !strings.HasPrefix(name, tempPrefix) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %s", errNotPartial, name)
	}
	if err := os.Remove(filepath.Join(d.root, string(category), name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (d *DiskStore) scan(category domain.Category, partial bool) ([]port.BlobInfo, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, string(category)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]port.BlobInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), tempPrefix) != partial {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, port.BlobInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	return out, nil
}

package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(_ context.Context, _ storage.Config, providerCfg any, log *logger.Logger) (storage.Backend, error) {
		c, ok := providerCfg.(*Config)
		if !ok || c == nil {
			return nil, apperrors.Validation(fmt.Sprintf("local: expected *local.Config, got %T", providerCfg))
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		b, err := NewBackend(c.BasePath)
		if err != nil {
			return nil, err
		}
		log.Info("local storage ready", map[string]interface{}{"root": b.Root()})
		return b, nil
	})
}

// Backend implements storage.Backend on a single flat directory.
type Backend struct {
	root string
}

// NewBackend creates the root directory if needed and returns a backend on it.
func NewBackend(basePath string) (*Backend, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, apperrors.IO("resolve base path", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, apperrors.IO("create base directory", err)
	}
	return &Backend{root: abs}, nil
}

// Root returns the absolute root directory.
func (b *Backend) Root() string { return b.root }

// Name returns "local".
func (b *Backend) Name() string { return storage.ProviderLocal }

// Available always reports true.
func (b *Backend) Available() bool { return true }

// Put writes data to root/name, replacing any existing file.
func (b *Backend) Put(_ context.Context, name string, data []byte) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return apperrors.IO("write file", err)
	}
	return nil
}

// Get reads root/name.
func (b *Backend) Get(_ context.Context, name string) ([]byte, error) {
	path, err := b.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NotFound("item", name)
		}
		return nil, apperrors.IO("read file", err)
	}
	return data, nil
}

// Delete removes root/name. Returns nil if the file does not exist.
func (b *Backend) Delete(_ context.Context, name string) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.IO("delete file", err)
	}
	return nil
}

// ListPage globs root/prefix* and returns the sorted file names after
// req.StartAfter, at most req.MaxKeys of them. The suffix is left to the
// listing engine, as on the object stores.
func (b *Backend) ListPage(_ context.Context, req storage.PageRequest) (storage.Page, error) {
	if strings.ContainsAny(req.Prefix, separators) {
		return storage.Page{}, nil
	}
	pattern := filepath.Join(escapeGlob(b.root), escapeGlob(req.Prefix)+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return storage.Page{}, apperrors.IO("glob "+pattern, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(m)
		if req.StartAfter != "" && name <= req.StartAfter {
			continue
		}
		info, err := os.Lstat(m)
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var page storage.Page
	if req.MaxKeys > 0 && len(names) > req.MaxKeys {
		names = names[:req.MaxKeys]
		page.Truncated = true
	}
	page.Names = names
	return page, nil
}

const separators = "/\\\x00"

// path maps an item name to a file directly under the root.
func (b *Backend) path(name string) (string, error) {
	switch {
	case name == "":
		return "", apperrors.InvalidName(name, "empty")
	case name == "." || name == "..":
		return "", apperrors.InvalidName(name, "reserved")
	case strings.ContainsAny(name, separators):
		return "", apperrors.InvalidName(name, "contains a path separator")
	}
	return filepath.Join(b.root, name), nil
}

// escapeGlob quotes the metacharacters understood by filepath.Match.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// compile-time check
var _ storage.Backend = (*Backend)(nil)

// Package registry provides read-only access to the casino registry the
// matcher and jurisdiction inferrer consult. The registry is refreshed
// independently of the pipeline; a classification run reads one snapshot
// of it up front and never sees mid-run mutation.
package registry

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/gamblecodez/drops-cli/internal/model"
)

// Source yields a point-in-time snapshot of the casino registry.
type Source interface {
	Casinos(ctx context.Context) ([]model.Casino, error)
}

// lister is the slice of the store the StoreSource needs.
type lister interface {
	ListCasinos(ctx context.Context) ([]model.Casino, error)
}

// StoreSource reads the registry from the database.
type StoreSource struct {
	st lister
}

// NewStoreSource creates a registry source backed by the store.
func NewStoreSource(st lister) *StoreSource {
	return &StoreSource{st: st}
}

func (s *StoreSource) Casinos(ctx context.Context) ([]model.Casino, error) {
	return s.st.ListCasinos(ctx)
}

// FileSource reads the registry from a yaml fixture file through an
// explicitly-invalidated cache keyed by file modification time: the
// file is re-parsed only when its mtime changes.
type FileSource struct {
	path string

	mu      sync.Mutex
	modTime time.Time
	cached  []model.Casino
}

// NewFileSource creates a file-backed registry source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Casinos(ctx context.Context) ([]model.Casino, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: stat %s", f.path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil && info.ModTime().Equal(f.modTime) {
		return f.cached, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: read %s", f.path)
	}

	var doc struct {
		Casinos []model.Casino `yaml:"casinos"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "registry: parse %s", f.path)
	}

	f.modTime = info.ModTime()
	f.cached = doc.Casinos
	return f.cached, nil
}

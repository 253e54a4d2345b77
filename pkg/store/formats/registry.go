// Package formats maps file extensions onto the raw record stores.
package formats

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/store/csvfile"
	"github.com/de-tools/afvalwijzer/pkg/store/duckdb/records"
	"github.com/de-tools/afvalwijzer/pkg/store/postgres"
	"github.com/de-tools/afvalwijzer/pkg/store/xlsx"
	"github.com/de-tools/afvalwijzer/pkg/store/zipfile"
)

type Reader interface {
	Read(ctx context.Context, filters domain.Filters) ([]store.Record, error)
}

type Writer interface {
	Write(ctx context.Context, records []store.Record, filters domain.Filters) error
}

type ReadWriter interface {
	Reader
	Writer
}

// StoreFactory opens the store behind a path.
type StoreFactory func(path string) ReadWriter

// Registry manages store factories by file extension.
type Registry interface {
	// Register adds a factory for an extension such as ".csv"
	Register(ext string, factory StoreFactory) error
	// Open returns the store for path based on its extension
	Open(path string) (ReadWriter, error)
	// Supports reports whether a store is registered for the extension of path
	Supports(path string) bool
	// Extensions returns the registered extensions, sorted
	Extensions() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]StoreFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]StoreFactory),
	}
}

// DefaultRegistry knows all raw formats.
func DefaultRegistry() Registry {
	r := NewRegistry()
	for ext, factory := range map[string]StoreFactory{
		".csv":    func(path string) ReadWriter { return csvfile.NewStore(path) },
		".xlsx":   func(path string) ReadWriter { return xlsx.NewStore(path) },
		".zip":    func(path string) ReadWriter { return zipfile.NewStore(path) },
		".duckdb": func(path string) ReadWriter { return records.NewFileStore(path) },
		".yaml":   func(path string) ReadWriter { return postgres.NewStore(path) },
		".yml":    func(path string) ReadWriter { return postgres.NewStore(path) },
		".ini":    func(path string) ReadWriter { return postgres.NewStore(path) },
	} {
		_ = r.Register(ext, factory)
	}
	return r
}

// Ext returns the lower case extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func (r *registry) Register(ext string, factory StoreFactory) error {
	if ext == "" {
		return fmt.Errorf("extension cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := r.factories[ext]; exists {
		return fmt.Errorf("format %q is already registered", ext)
	}

	r.factories[ext] = factory
	return nil
}

func (r *registry) Open(path string) (ReadWriter, error) {
	r.mu.RLock()
	factory, exists := r.factories[Ext(path)]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported file format: %q", Ext(path))
	}
	return factory(path), nil
}

func (r *registry) Supports(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[Ext(path)]
	return exists
}

func (r *registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.factories))
	for ext := range r.factories {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Package zipfile stores the raw csv export inside a zip archive. The archive
// holds one member named after the archive, e.g. afvalwijzer.zip contains
// afvalwijzer.csv.
package zipfile

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/store/csvfile"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// MemberName returns the name of the csv file inside the archive.
func MemberName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

func (s *Store) Read(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	archive, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", s.path, err)
	}
	defer archive.Close()

	name := MemberName(s.path)
	member, err := archive.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in %s: %w", name, s.path, err)
	}
	defer member.Close()

	records, err := csvfile.Decode(ctx, member, s.path+"/"+name, filters)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Str("member", name).
		Int("records", len(records)).
		Msg("read zipped csv records")
	return records, nil
}

func (s *Store) Write(ctx context.Context, records []store.Record, _ domain.Filters) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	defer f.Close()

	archive := zip.NewWriter(f)
	member, err := archive.CreateHeader(&zip.FileHeader{
		Name:   MemberName(s.path),
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("failed to add member to %s: %w", s.path, err)
	}

	if err := csvfile.Encode(member, records); err != nil {
		return err
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finish archive %s: %w", s.path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("wrote zipped csv records")
	return f.Close()
}

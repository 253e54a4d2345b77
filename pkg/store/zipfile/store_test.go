package zipfile

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

func TestMemberName(t *testing.T) {
	assert.Equal(t, "afvalwijzer.csv", MemberName("/tmp/data/afvalwijzer.zip"))
	assert.Equal(t, "export.2024.csv", MemberName("export.2024.zip"))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "afvalwijzer.zip")

	var a, b store.Record
	a[store.ColResidential], a[store.ColStreet], a[store.ColHouseNumber] = "True", "Dam", "1"
	b[store.ColResidential], b[store.ColStreet], b[store.ColHouseNumber] = "False", "Dam", "2"
	records := []store.Record{a, b}

	s := NewStore(path)
	require.NoError(t, s.Write(ctx, records, nil))

	archive, err := zip.OpenReader(path)
	require.NoError(t, err)
	require.Len(t, archive.File, 1)
	assert.Equal(t, "afvalwijzer.csv", archive.File[0].Name)
	require.NoError(t, archive.Close())

	got, err := s.Read(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	got, err = s.Read(ctx, domain.Filters{{Field: "woonfunctie", Value: false}})
	require.NoError(t, err)
	assert.Equal(t, []store.Record{b}, got)
}

func TestStore_MissingMember(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, NewStore(filepath.Join(dir, "a.zip")).Write(ctx, nil, nil))

	// renamed archives no longer contain the expected member
	_, err := NewStore(filepath.Join(dir, "a.zip")).Read(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(dir, "a.zip"), filepath.Join(dir, "b.zip")))
	_, err = NewStore(filepath.Join(dir, "b.zip")).Read(ctx, nil)
	assert.ErrorContains(t, err, "b.csv")
}

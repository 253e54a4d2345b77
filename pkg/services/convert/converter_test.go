package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/services/config"
	"github.com/de-tools/afvalwijzer/pkg/services/normalize"
	"github.com/de-tools/afvalwijzer/pkg/store/csvfile"
	"github.com/de-tools/afvalwijzer/pkg/store/formats"
	"github.com/de-tools/afvalwijzer/pkg/store/postgres"
	"github.com/de-tools/afvalwijzer/pkg/store/xlsx"
)

var reportDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func record(residential, neighborhood, street string, number int, fraction, days string) store.Record {
	var rec store.Record
	rec[store.ColResidential] = residential
	rec[store.ColDistrict] = "Centrum"
	rec[store.ColLocality] = "Amsterdam"
	rec[store.ColNeighborhood] = neighborhood
	rec[store.ColFraction] = fraction
	rec[store.ColInstruction] = "In de container"
	rec[store.ColCollectionDays] = days
	rec[store.ColRemark] = "<b>Let op</b> de dag"
	rec[store.ColStreet] = street
	rec[store.ColHouseNumber] = strconv.Itoa(number)
	return rec
}

func fixtureRecords() []store.Record {
	var records []store.Record
	for n := 1; n <= 6; n++ {
		records = append(records,
			record("True", "A00a", "Dam", n, "Rest", "maandag"),
			record("True", "A00a", "Dam", n, "Papier", "woensdag"),
		)
	}
	records = append(records,
		record("False", "A00a", "Dam", 7, "Rest", "vrijdag"),
		record("True", "A00b", "Damrak", 1, "Rest", "dinsdag"),
	)
	return records
}

type fixture struct {
	dir       string
	input     string
	converter *Converter
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "afvalwijzer.csv")
	require.NoError(t, csvfile.NewStore(input).Write(context.Background(), fixtureRecords(), nil))

	return &fixture{
		dir:   dir,
		input: input,
		converter: NewConverter(Options{
			Author:     "Gemeente Amsterdam",
			Department: "Afval & Grondstoffen",
			Now:        func() time.Time { return reportDate },
		}),
	}
}

func assertNoTemporaryFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".afvalwijzer-")
	}
}

func TestConverter_Documents(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for _, ext := range []string{".pdf", ".docx", ".html", ".txt"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(f.dir, "afvalwijzer"+ext)

			err := f.converter.Convert(ctx, f.input, out, nil)

			require.NoError(t, err)
			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
			assertNoTemporaryFiles(t, f.dir)
		})
	}

	t.Run("text content", func(t *testing.T) {
		out := filepath.Join(f.dir, "residents.txt")
		filters := domain.Filters{{Field: "woonfunctie", Value: true}}

		require.NoError(t, f.converter.Convert(ctx, f.input, out, filters))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "Waste guide for residents")
		assert.Contains(t, text, "  * Dam 1–6\n")
		assert.Contains(t, text, "=== Amsterdam, neighborhood A00b ===")
		assert.Contains(t, text, "Let op de dag")
		assert.NotContains(t, text, "<b>")
		assert.NotContains(t, text, "Dam 7")
	})
}

func TestConverter_BuildReport(t *testing.T) {
	f := setupFixture(t)

	rep, err := f.converter.BuildReport(context.Background(), fixtureRecords(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Waste guide", rep.Title)
	assert.Equal(t, "Gemeente Amsterdam", rep.Author)
	assert.Equal(t, "Afval & Grondstoffen", rep.Department)
	assert.Equal(t, reportDate, rep.Date)
	require.Len(t, rep.Chapters, 2)
	// Dam 1-6 share two rules, Dam 7 has one
	require.Len(t, rep.Chapters[0].Blocks, 2)
	assert.Equal(t, []string{"Dam 1–6"}, rep.Chapters[0].Blocks[0].Addresses)
	assert.Len(t, rep.Chapters[0].Blocks[0].Rules, 2)
	assert.Equal(t, []string{"Dam 7"}, rep.Chapters[0].Blocks[1].Addresses)
}

func TestConverter_RawFormats(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	out := filepath.Join(f.dir, "afvalwijzer.xlsx")

	require.NoError(t, f.converter.Convert(ctx, f.input, out, nil))

	got, err := xlsx.NewStore(out).Read(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, fixtureRecords(), got)
	assertNoTemporaryFiles(t, f.dir)
}

func TestConverter_Failures(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("malformed house number", func(t *testing.T) {
		input := filepath.Join(f.dir, "broken.csv")
		records := fixtureRecords()
		records[3][store.ColHouseNumber] = "3a"
		require.NoError(t, csvfile.NewStore(input).Write(ctx, records, nil))
		out := filepath.Join(f.dir, "broken.pdf")

		err := f.converter.Convert(ctx, input, out, nil)

		var formatErr *normalize.ValueFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, 4, formatErr.Row)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
		assertNoTemporaryFiles(t, f.dir)
	})

	t.Run("unsupported output", func(t *testing.T) {
		err := f.converter.Convert(ctx, f.input, filepath.Join(f.dir, "out.odt"), nil)

		assert.ErrorContains(t, err, "unsupported file format")
	})

	t.Run("unsupported input", func(t *testing.T) {
		err := f.converter.Convert(ctx, filepath.Join(f.dir, "in.pdf"), filepath.Join(f.dir, "out.txt"), nil)

		assert.ErrorContains(t, err, "unsupported file format")
	})

	t.Run("remote input without fetcher", func(t *testing.T) {
		err := f.converter.Convert(ctx, "https://example.com/a.csv", filepath.Join(f.dir, "out.txt"), nil)

		assert.ErrorContains(t, err, "remote inputs are not enabled")
	})
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type expiringStore struct {
	path  string
	reads int
}

func (s *expiringStore) Read(context.Context, domain.Filters) ([]store.Record, error) {
	s.reads++
	params, err := postgres.LoadParams(s.path)
	if err != nil {
		return nil, err
	}
	if params.Password != "fresh-token" {
		return nil, postgres.ErrTokenExpired
	}
	return fixtureRecords(), nil
}

func (s *expiringStore) Write(context.Context, []store.Record, domain.Filters) error {
	return postgres.ErrWriteNotSupported
}

func TestConverter_TokenRefresh(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	params := filepath.Join(dir, "db.yaml")
	require.NoError(t, os.WriteFile(params, []byte("host: localhost\nport: 5432\ndbname: afval\nuser: me\npassword: stale\n"), 0o600))

	var opened *expiringStore
	registry := formats.NewRegistry()
	require.NoError(t, registry.Register(".yaml", func(path string) formats.ReadWriter {
		opened = &expiringStore{path: path}
		return opened
	}))

	t.Run("retries once with a new token", func(t *testing.T) {
		tokens := &mockTokens{}
		tokens.On("Token", ctx).Return("fresh-token", nil).Once()
		c := NewConverter(Options{Stores: registry, Tokens: tokens})

		records, err := c.Read(ctx, params, nil)

		require.NoError(t, err)
		assert.Len(t, records, len(fixtureRecords()))
		assert.Equal(t, 2, opened.reads)
		loaded, err := postgres.LoadParams(params)
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", loaded.Password)
		tokens.AssertExpectations(t)
	})

	t.Run("token errors are reported", func(t *testing.T) {
		require.NoError(t, postgres.UpdateParams(params, map[string]string{"password": "stale"}))
		tokens := &mockTokens{}
		tokens.On("Token", ctx).Return("", errors.New("please run az login"))
		c := NewConverter(Options{Stores: registry, Tokens: tokens})

		_, err := c.Read(ctx, params, nil)

		assert.ErrorIs(t, err, postgres.ErrTokenExpired)
		assert.ErrorContains(t, err, "please run az login")
	})

	t.Run("without token source the error is returned", func(t *testing.T) {
		c := NewConverter(Options{Stores: registry})

		_, err := c.Read(ctx, params, nil)

		assert.ErrorIs(t, err, postgres.ErrTokenExpired)
		assert.Equal(t, 1, opened.reads)
	})
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, location string) (string, func(), error) {
	args := m.Called(ctx, location)
	return args.String(0), args.Get(1).(func()), args.Error(2)
}

func TestConverter_RemoteInput(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	const location = "https://api.data.amsterdam.nl/v1/afvalwijzer/?_format=csv"

	cleaned := false
	fetcher := &mockFetcher{}
	fetcher.On("Fetch", ctx, location).Return(f.input, func() { cleaned = true }, nil)
	c := NewConverter(Options{Fetcher: fetcher})

	summaries, err := c.Neighborhoods(ctx, location, nil)

	require.NoError(t, err)
	assert.True(t, cleaned)
	assert.Equal(t, []NeighborhoodSummary{
		{Neighborhood: domain.NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "A00a"}, Groups: 2, Addresses: 7},
		{Neighborhood: domain.NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "A00b"}, Groups: 1, Addresses: 1},
	}, summaries)
}

func TestConverter_Formats(t *testing.T) {
	c := NewConverter(Options{})

	infos := c.Formats()

	assert.Contains(t, infos, FormatInfo{Ext: ".csv", Kind: KindRaw})
	assert.Contains(t, infos, FormatInfo{Ext: ".duckdb", Kind: KindRaw})
	assert.Contains(t, infos, FormatInfo{Ext: ".pdf", Kind: KindDocument, ContentType: "application/pdf"})
	assert.Equal(t, KindRaw, infos[0].Kind)
	assert.Equal(t, KindDocument, infos[len(infos)-1].Kind)
}

func TestDocumentFormat(t *testing.T) {
	for _, name := range []string{"pdf", ".pdf", " PDF "} {
		f, err := DocumentFormat(name)
		require.NoError(t, err)
		assert.Equal(t, ".pdf", f.Ext)
	}

	_, err := DocumentFormat("csv")
	assert.ErrorContains(t, err, "unsupported file format")
	assert.True(t, IsDocument(".docx"))
	assert.False(t, IsDocument(".xlsx"))
}

func TestNewFromConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Author = "Stadsdeel West"

	c, err := NewFromConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, "Stadsdeel West", c.author)
	assert.Equal(t, cfg.Department, c.department)
	assert.NotNil(t, c.fetcher)
	assert.NotNil(t, c.tokens)
}

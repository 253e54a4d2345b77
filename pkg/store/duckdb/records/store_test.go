package records

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: store,
	}
}

func testRecords() []store.Record {
	var a, b, c store.Record
	a[store.ColResidential], a[store.ColDistrict], a[store.ColStreet], a[store.ColHouseNumber] = "True", "Centrum", "Dam", "2"
	b[store.ColResidential], b[store.ColDistrict], b[store.ColStreet], b[store.ColHouseNumber] = "False", "Centrum", "Dam", "1"
	c[store.ColResidential], c[store.ColDistrict], c[store.ColStreet], c[store.ColHouseNumber] = "True", "West", "Bos en Lommerweg", "10"
	c[store.ColRemark] = "Tuinafval apart aanmelden."
	return []store.Record{a, b, c}
}

func TestRecordStore_Replace(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - add records", func(t *testing.T) {
		err := f.store.Replace(ctx, testRecords())
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM waste_records").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("success - replaces previous contents", func(t *testing.T) {
		err := f.store.Replace(ctx, testRecords()[:1])
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM waste_records").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("success - empty records", func(t *testing.T) {
		err := f.store.Replace(ctx, nil)
		require.NoError(t, err)
	})

	t.Run("rollback - transaction in context", func(t *testing.T) {
		require.NoError(t, f.store.Replace(ctx, testRecords()))

		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, f.store.Replace(duckdb.WithTransaction(ctx, tx), nil))
		require.NoError(t, tx.Rollback())

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM waste_records").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestRecordStore_Query(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	records := testRecords()
	require.NoError(t, f.store.Replace(ctx, records))

	t.Run("insertion order", func(t *testing.T) {
		got, err := f.store.Query(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("filters", func(t *testing.T) {
		got, err := f.store.Query(ctx, domain.Filters{
			{Field: "woonfunctie", Value: true},
			{Field: "stadsdeel", Value: "centrum"},
		})

		require.NoError(t, err)
		assert.Equal(t, records[:1], got)
	})

	t.Run("unknown filter field", func(t *testing.T) {
		_, err := f.store.Query(ctx, domain.Filters{{Field: "postcode", Value: "1012"}})

		var schemaErr *store.SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(filepath.Join(t.TempDir(), "afvalwijzer.duckdb"))
	records := testRecords()

	require.NoError(t, fs.Write(ctx, records, nil))
	require.NoError(t, fs.Write(ctx, records, nil))

	got, err := fs.Read(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"mis-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_ReplaceAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Replace(ctx, domain.DatasetDispatch, []domain.RawRecord{
		{"category": "COUPLER", "dm_daily": "2", "budat": "20250115"},
		{"category": "BOGIE", "dis_daily": 1.5, "budat": "20250115"},
		{"category": "WHEEL", "budat": "20250114"},
	})
	require.NoError(t, err)

	got, err := store.Read(ctx, domain.DatasetDispatch, []domain.Filter{{Field: "budat", Value: "20250115"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRecord{
		{"category": "COUPLER", "dm_daily": "2", "budat": "20250115"},
		{"category": "BOGIE", "dis_daily": "1.5", "budat": "20250115"},
	}, got)

	all, err := store.Read(ctx, domain.DatasetDispatch, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "WHEEL", all[2]["category"])
}

func TestSQLiteStore_ReplaceDiscardsPreviousRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, domain.DatasetStock, []domain.RawRecord{{"parameter": "Old", "menge": "1"}}))
	require.NoError(t, store.Replace(ctx, domain.DatasetStock, []domain.RawRecord{{"parameter": "New", "budat": "20250115"}}))

	got, err := store.Read(ctx, domain.DatasetStock, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRecord{{"parameter": "New", "budat": "20250115"}}, got)
}

func TestSQLiteStore_Read_Errors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing table", func(t *testing.T) {
		_, err := store.Read(ctx, domain.DatasetDtm, nil)
		assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
	})

	t.Run("unknown filter field", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, domain.DatasetCombine, []domain.RawRecord{{"category": "BOGIE"}}))
		_, err := store.Read(ctx, domain.DatasetCombine, []domain.Filter{{Field: "budat\" OR 1=1 --", Value: "x"}})
		assert.Error(t, err)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		_, err := store.Read(ctx, domain.DatasetItem, nil)
		assert.ErrorIs(t, err, domain.ErrUnknownDataset)
	})
}

func TestSQLiteStore_Import(t *testing.T) {
	dir := t.TempDir()
	files := map[string][][]string{
		"dtm.csv":      {{"plant", "budat"}, {"P1", "20250115"}},
		"combine.csv":  {{"category", "t_menge", "budat"}, {"BOGIE_ASSY", "5.0", "20250115"}},
		"dispatch.csv": {{"category", "budat"}, {"BOGIE", "20250115"}, {"WHEEL", "20250116"}},
		"stock.csv":    {{"parameter", "menge", "budat"}},
	}
	for name, rows := range files {
		if err := writeCSV(filepath.Join(dir, name), rows); err != nil {
			t.Fatalf("Failed to create CSV file: %v", err)
		}
	}

	store := newTestStore(t)
	ctx := context.Background()

	counts, err := store.Import(ctx, NewCSVDatasetReader(dir))
	require.NoError(t, err)
	assert.Equal(t, map[domain.Dataset]int{
		domain.DatasetDtm:      1,
		domain.DatasetCombine:  1,
		domain.DatasetDispatch: 2,
		domain.DatasetStock:    0,
	}, counts)

	got, err := store.Read(ctx, domain.DatasetDispatch, []domain.Filter{{Field: "budat", Value: "20250116"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRecord{{"category": "WHEEL", "budat": "20250116"}}, got)

	stock, err := store.Read(ctx, domain.DatasetStock, []domain.Filter{{Field: "budat", Value: "20250115"}})
	require.NoError(t, err)
	assert.Empty(t, stock)
}

func TestSQLiteStore_Import_MissingSource(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Import(context.Background(), NewCSVDatasetReader(t.TempDir()))
	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
}

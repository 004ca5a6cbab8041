// internal/utils/pagination_test.go
package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

func newPaginationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CarBrand{}))
	return db
}

// seedBrands inserts n brands with distinct created_at, newest last by
// insertion order so brand n-1 sorts first.
func seedBrands(t *testing.T, db *gorm.DB, n int) []models.CarBrand {
	t.Helper()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	brands := make([]models.CarBrand, n)
	for i := range brands {
		brands[i] = models.CarBrand{
			BaseModel: models.BaseModel{
				ID:        fmt.Sprintf("brand-%03d", i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
			Name: fmt.Sprintf("Brand %d", i),
		}
		require.NoError(t, db.Create(&brands[i]).Error)
	}
	return brands
}

func brandIDs(items []models.CarBrand) []string {
	ids := make([]string, len(items))
	for i, b := range items {
		ids[i] = b.ID
	}
	return ids
}

func TestCursorPaginateWalksForwardWithoutGaps(t *testing.T) {
	db := newPaginationDB(t)
	seedBrands(t, db, 7)

	var visited []string
	params := CursorParams{Direction: DirectionNext, Limit: 3}
	for {
		page, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}), params)
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.Total)
		visited = append(visited, brandIDs(page.Items)...)
		if page.NextCursor == nil {
			assert.False(t, page.HasMore)
			break
		}
		assert.True(t, page.HasMore)
		params.Cursor = *page.NextCursor
	}

	// Every row exactly once, newest first.
	assert.Equal(t, []string{
		"brand-006", "brand-005", "brand-004",
		"brand-003", "brand-002", "brand-001",
		"brand-000",
	}, visited)
}

func TestCursorPaginateBreaksTiesOnID(t *testing.T) {
	db := newPaginationDB(t)

	// All rows share one timestamp; ordering falls through to id.
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.CarBrand{
			BaseModel: models.BaseModel{
				ID:        fmt.Sprintf("tie-%d", i),
				CreatedAt: ts,
			},
			Name: fmt.Sprintf("Tie %d", i),
		}).Error)
	}

	first, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Direction: DirectionNext, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-4", "tie-3"}, brandIDs(first.Items))
	require.NotNil(t, first.NextCursor)

	second, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Cursor: *first.NextCursor, Direction: DirectionNext, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-2", "tie-1"}, brandIDs(second.Items))
}

func TestCursorPaginatePrevReconstructsPriorPage(t *testing.T) {
	db := newPaginationDB(t)
	seedBrands(t, db, 7)

	first, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Direction: DirectionNext, Limit: 3})
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor)

	second, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Cursor: *first.NextCursor, Direction: DirectionNext, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"brand-003", "brand-002", "brand-001"}, brandIDs(second.Items))
	require.NotNil(t, second.PrevCursor)

	// Walking back from page two lands on page one, still newest-first.
	back, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Cursor: *second.PrevCursor, Direction: DirectionPrev, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, brandIDs(first.Items), brandIDs(back.Items))
}

func TestCursorPaginateUnresolvableCursorDegradesToFirstPage(t *testing.T) {
	db := newPaginationDB(t)
	seedBrands(t, db, 5)

	page, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Cursor: "vanished", Direction: DirectionNext, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"brand-004", "brand-003", "brand-002"}, brandIDs(page.Items))
	assert.True(t, page.HasMore)
}

func TestCursorPaginateRespectsBaseFilters(t *testing.T) {
	db := newPaginationDB(t)
	brands := seedBrands(t, db, 6)
	require.NoError(t, db.Delete(&brands[5]).Error)

	base := db.Model(&models.CarBrand{}).Where("name <> ?", "Brand 3")
	page, err := CursorPaginate[models.CarBrand](db, base,
		CursorParams{Direction: DirectionNext, Limit: 10})
	require.NoError(t, err)

	// Soft-deleted and filtered rows are invisible to both page and Total.
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, []string{"brand-004", "brand-002", "brand-001", "brand-000"}, brandIDs(page.Items))
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestCursorPaginateExactBoundary(t *testing.T) {
	db := newPaginationDB(t)
	seedBrands(t, db, 4)

	// Page size equals row count: no next cursor, no has_more.
	page, err := CursorPaginate[models.CarBrand](db, db.Model(&models.CarBrand{}),
		CursorParams{Direction: DirectionNext, Limit: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
	assert.Nil(t, page.PrevCursor)
}

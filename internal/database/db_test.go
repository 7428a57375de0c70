package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jgoulah/bikereport/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReplaceRecords(t *testing.T) {
	db := openTestDB(t)

	first := []models.RentalRecord{
		{Date: day("2011-01-02"), Weathersit: 2, Weekday: 0, Count: 801},
		{Date: day("2011-01-01"), Weathersit: 2, Weekday: 6, Count: 985},
	}
	n, err := db.ReplaceRecords("day.csv", first)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.ListRecords()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day("2011-01-01"), got[0].Date)
	assert.Equal(t, 985, got[0].Count)
	assert.Equal(t, 6, got[0].Weekday)

	source, err := db.Source()
	require.NoError(t, err)
	assert.Equal(t, "day.csv", source)

	t.Run("second import replaces", func(t *testing.T) {
		_, err := db.ReplaceRecords("other.csv", first[:1])
		require.NoError(t, err)

		count, err := db.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestEmptyStore(t *testing.T) {
	db := openTestDB(t)

	got, err := db.ListRecords()
	require.NoError(t, err)
	assert.Empty(t, got)

	source, err := db.Source()
	require.NoError(t, err)
	assert.Equal(t, "", source)
}

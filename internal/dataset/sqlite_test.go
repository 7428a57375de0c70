package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jgoulah/bikereport/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSQLiteRoundTrip(t *testing.T) {
	source, err := ReadCSV(strings.NewReader(dayCSV), "day.csv")
	require.NoError(t, err)
	records, err := source.Records()
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "rentals.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ReplaceRecords("day.csv", records)
	require.NoError(t, err)

	table, err := LoadSQLite(db)
	require.NoError(t, err)
	assert.Equal(t, source.Dates(), table.Dates())

	got, err := table.Records()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestLoadSQLiteEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.db")
	db, err := database.New(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = LoadSQLite(db)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "expected LoadError, got %T", err)
	assert.Equal(t, path, loadErr.Path)
	assert.ErrorIs(t, err, ErrEmptyStore)
	assert.Contains(t, err.Error(), "bikereport import")
}

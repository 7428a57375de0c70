package dataset

import (
	"github.com/jgoulah/bikereport/internal/database"
)

// LoadSQLite reads the dataset from the local store filled by the import command.
// A store that was never imported is a LoadError wrapping ErrEmptyStore.
func LoadSQLite(db *database.DB) (*Table, error) {
	n, err := db.Count()
	if err != nil {
		return nil, &LoadError{Path: db.Path(), Err: err}
	}
	if n == 0 {
		return nil, &LoadError{Path: db.Path(), Err: ErrEmptyStore}
	}

	records, err := db.ListRecords()
	if err != nil {
		return nil, &LoadError{Path: db.Path(), Err: err}
	}
	return FromRecords(db.Path(), records), nil
}

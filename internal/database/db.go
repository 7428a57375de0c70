package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/bikereport/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn, path: dbPath}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rentals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		weathersit INTEGER NOT NULL,
		weekday INTEGER NOT NULL,
		cnt INTEGER NOT NULL,
		source TEXT NOT NULL,
		imported_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rentals_date ON rentals(date);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// ReplaceRecords swaps the stored dataset for records in a single transaction
func (db *DB) ReplaceRecords(source string, records []models.RentalRecord) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rentals`); err != nil {
		return 0, fmt.Errorf("clearing rentals: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO rentals (date, weathersit, weekday, cnt, source, imported_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	importedAt := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		dateStr := r.Date.Format("2006-01-02")
		if _, err := stmt.Exec(dateStr, r.Weathersit, r.Weekday, r.Count, source, importedAt); err != nil {
			return 0, fmt.Errorf("inserting rental for %s: %w", dateStr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}

	return len(records), nil
}

// ListRecords retrieves all stored rentals, ordered by date
func (db *DB) ListRecords() ([]models.RentalRecord, error) {
	query := `
	SELECT date, weathersit, weekday, cnt
	FROM rentals
	ORDER BY date ASC, id ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying rentals: %w", err)
	}
	defer rows.Close()

	results := []models.RentalRecord{}
	for rows.Next() {
		var r models.RentalRecord
		var dateStr string

		if err := rows.Scan(&dateStr, &r.Weathersit, &r.Weekday, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

// Count returns the number of stored rentals
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM rentals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rentals: %w", err)
	}
	return n, nil
}

// Source returns the file the stored rentals were imported from, or "" when empty
func (db *DB) Source() (string, error) {
	var source string
	err := db.conn.QueryRow(`SELECT source FROM rentals LIMIT 1`).Scan(&source)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying source: %w", err)
	}
	return source, nil
}

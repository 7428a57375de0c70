package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Layouts accepted for the date column, tried in order. Spreadsheet and
// dataframe exports often write a time of day after the date.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// LoadCSV reads the dataset from a CSV file
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return ReadCSV(f, path)
}

// ReadCSV reads the dataset from r. name is only used in errors.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: name, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("reading CSV header: %w", err)}
	}

	// Map normalized column names to their index, first occurrence wins
	index := make(map[string]int, len(header))
	names := make([]string, 0, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := index[key]; dup || key == "" {
			continue
		}
		index[key] = i
		names = append(names, key)
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{
			Path: name,
			Err:  fmt.Errorf("%w: %s (header: %v)", ErrMissingColumn, strings.Join(missing, ", "), header),
		}
	}

	t := newTable(name, names)
	dateCol := index[ColDate]

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: name, Err: fmt.Errorf("reading CSV row: %w", err)}
		}

		date, err := parseDate(strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, &LoadError{Path: name, Err: fmt.Errorf("line %d: %w", line, err)}
		}

		t.dates = append(t.dates, date)
		for _, col := range names {
			t.columns[col] = append(t.columns[col], record[index[col]])
		}
	}

	return t, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}

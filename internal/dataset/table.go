package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/bikereport/pkg/models"
)

// Column names of the daily bike sharing file
const (
	ColDate       = "dteday"
	ColWeathersit = "weathersit"
	ColWeekday    = "weekday"
	ColCount      = "cnt"
)

// RequiredColumns must be present in every source
var RequiredColumns = []string{ColDate, ColWeathersit, ColWeekday, ColCount}

// Table is the loaded dataset. It is never modified after construction;
// accessors hand out copies.
type Table struct {
	name    string
	header  []string
	dates   []time.Time
	columns map[string][]string
}

func newTable(name string, header []string) *Table {
	t := &Table{
		name:    name,
		header:  header,
		columns: make(map[string][]string, len(header)),
	}
	for _, col := range header {
		t.columns[col] = []string{}
	}
	return t
}

// FromRecords builds a table from typed rental records
func FromRecords(name string, records []models.RentalRecord) *Table {
	t := newTable(name, []string{ColDate, ColWeathersit, ColWeekday, ColCount})
	t.dates = make([]time.Time, 0, len(records))
	for _, r := range records {
		t.dates = append(t.dates, r.Date)
		t.columns[ColDate] = append(t.columns[ColDate], r.Date.Format(dateLayout))
		t.columns[ColWeathersit] = append(t.columns[ColWeathersit], strconv.Itoa(r.Weathersit))
		t.columns[ColWeekday] = append(t.columns[ColWeekday], strconv.Itoa(r.Weekday))
		t.columns[ColCount] = append(t.columns[ColCount], strconv.Itoa(r.Count))
	}
	return t
}

// Name returns the source the table was loaded from
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.dates)
}

// Header returns the column names in source order
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// dateAt returns the parsed date of row i
func (t *Table) dateAt(i int) time.Time {
	return t.dates[i]
}

// Dates returns the parsed date column
func (t *Table) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// column returns a copy of the raw cells of a column
func (t *Table) column(name string) ([]string, bool) {
	cells, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cells...), true
}

// Ints converts a column to integers. A missing column or a non-numeric cell
// yields a *TransformError.
func (t *Table) Ints(name string) ([]int, error) {
	cells, ok := t.column(name)
	if !ok {
		return nil, &TransformError{Column: name, Reason: "column not present"}
	}

	values := make([]int, len(cells))
	for i, cell := range cells {
		v, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, &TransformError{Column: name, Row: i + 1, Value: cell, Reason: "not an integer"}
		}
		values[i] = v
	}
	return values, nil
}

// Records converts the table to typed rows
func (t *Table) Records() ([]models.RentalRecord, error) {
	weather, err := t.Ints(ColWeathersit)
	if err != nil {
		return nil, err
	}
	weekdays, err := t.Ints(ColWeekday)
	if err != nil {
		return nil, err
	}
	counts, err := t.Ints(ColCount)
	if err != nil {
		return nil, err
	}

	records := make([]models.RentalRecord, t.Len())
	for i := range records {
		records[i] = models.RentalRecord{
			Date:       t.dateAt(i),
			Weathersit: weather[i],
			Weekday:    weekdays[i],
			Count:      counts[i],
		}
	}
	return records, nil
}

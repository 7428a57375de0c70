package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/pkg/models"
)

// Sheet names, one per aggregation
const (
	WeatherSheet = "Weather"
	WeekendSheet = "Day Type"
	DailySheet   = "Daily Totals"
)

// WriteXLSX writes the aggregates to a workbook. A failed aggregation gets a
// sheet holding only its error.
func WriteXLSX(w io.Writer, r *aggregate.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Bike Rental Analysis",
		Subject: "Rentals by weather, day type and date",
		Creator: "bikereport",
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	sheets := []struct {
		name    string
		headers []string
		err     error
		rows    [][]interface{}
	}{
		{WeatherSheet, []string{"Weather Situation", "Label", "Average Rentals", "Days"}, r.WeatherErr, weatherRows(r.Weather)},
		{WeekendSheet, []string{"Is Weekend", "Label", "Average Rentals", "Days"}, r.WeekendErr, weekendRows(r.Weekend)},
		{DailySheet, []string{"Date", "Total Rentals"}, r.DailyErr, dailyRows(r.Daily)},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", s.name, err)
		}

		if s.err != nil {
			if err := f.SetCellValue(s.name, "A1", fmt.Sprintf("unavailable: %v", s.err)); err != nil {
				return fmt.Errorf("writing sheet %s: %w", s.name, err)
			}
			continue
		}

		if err := writeRows(f, s.name, s.headers, s.rows); err != nil {
			return fmt.Errorf("writing sheet %s: %w", s.name, err)
		}
		if err := f.SetColWidth(s.name, "A", colLetter(len(s.headers)), 18); err != nil {
			return fmt.Errorf("sizing sheet %s: %w", s.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func weatherRows(agg models.WeatherAggregate) [][]interface{} {
	rows := make([][]interface{}, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, []interface{}{row.Weathersit, models.WeatherLabel(row.Weathersit), row.Cnt, row.Days})
	}
	return rows
}

func weekendRows(agg models.WeekendAggregate) [][]interface{} {
	rows := make([][]interface{}, 0, len(agg))
	for _, row := range agg {
		flag := 0
		if row.IsWeekend {
			flag = 1
		}
		rows = append(rows, []interface{}{flag, models.DayTypeLabel(row.IsWeekend), row.Cnt, row.Days})
	}
	return rows
}

func dailyRows(agg models.DailyTotal) [][]interface{} {
	rows := make([][]interface{}, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, []interface{}{row.Date.Format("2006-01-02"), row.Cnt})
	}
	return rows
}

func colLetter(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

// Package aggregate computes the grouped tables shown in the rental report.
// Every function reads the table without modifying it and returns a freshly
// allocated result, so they are safe to run concurrently on one table.
package aggregate

import (
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/jgoulah/bikereport/internal/dataset"
	"github.com/jgoulah/bikereport/pkg/models"
)

// ByWeather returns the mean rental count per weather situation, ordered by code
func ByWeather(t *dataset.Table) (models.WeatherAggregate, error) {
	codes, err := t.Ints(dataset.ColWeathersit)
	if err != nil {
		return nil, err
	}
	counts, err := rentalCounts(t)
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]float64)
	for i, code := range codes {
		groups[code] = append(groups[code], counts[i])
	}

	keys := make([]int, 0, len(groups))
	for code := range groups {
		keys = append(keys, code)
	}
	sort.Ints(keys)

	result := make(models.WeatherAggregate, 0, len(keys))
	for _, code := range keys {
		result = append(result, models.WeatherRow{
			Weathersit: code,
			Cnt:        stat.Mean(groups[code], nil),
			Days:       len(groups[code]),
		})
	}
	return result, nil
}

// ByWeekend returns the mean rental count for weekdays and weekends.
// A day type with no records is left out.
func ByWeekend(t *dataset.Table) (models.WeekendAggregate, error) {
	weekdays, err := t.Ints(dataset.ColWeekday)
	if err != nil {
		return nil, err
	}
	counts, err := rentalCounts(t)
	if err != nil {
		return nil, err
	}

	var weekday, weekend []float64
	for i, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return nil, &dataset.TransformError{
				Column: dataset.ColWeekday,
				Row:    i + 1,
				Value:  strconv.Itoa(wd),
				Reason: "weekday outside 0-6",
			}
		}
		if models.IsWeekend(wd) {
			weekend = append(weekend, counts[i])
		} else {
			weekday = append(weekday, counts[i])
		}
	}

	result := make(models.WeekendAggregate, 0, 2)
	for _, g := range []struct {
		isWeekend bool
		values    []float64
	}{{false, weekday}, {true, weekend}} {
		if len(g.values) == 0 {
			continue
		}
		result = append(result, models.WeekendRow{
			IsWeekend: g.isWeekend,
			Cnt:       stat.Mean(g.values, nil),
			Days:      len(g.values),
		})
	}
	return result, nil
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

// DailyTotals returns the summed rental count per calendar date, ascending.
// Dates missing from the source are not filled in.
func DailyTotals(t *dataset.Table) (models.DailyTotal, error) {
	counts, err := t.Ints(dataset.ColCount)
	if err != nil {
		return nil, err
	}
	if err := checkNonNegative(counts); err != nil {
		return nil, err
	}

	totals := make(map[civilDate]int)
	for i, date := range t.Dates() {
		y, m, d := date.Date()
		totals[civilDate{y, m, d}] += counts[i]
	}

	result := make(models.DailyTotal, 0, len(totals))
	for key, sum := range totals {
		result = append(result, models.DailyRow{
			Date: time.Date(key.year, key.month, key.day, 0, 0, 0, 0, time.UTC),
			Cnt:  sum,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// Result collects the three aggregations with a separate error for each,
// so one bad column only takes out the charts that depend on it.
type Result struct {
	Weather    models.WeatherAggregate
	WeatherErr error
	Weekend    models.WeekendAggregate
	WeekendErr error
	Daily      models.DailyTotal
	DailyErr   error
}

// All runs every aggregation concurrently. The returned error is the first
// failure; the Result is always complete.
func All(t *dataset.Table) (*Result, error) {
	var r Result
	var g errgroup.Group

	g.Go(func() error {
		r.Weather, r.WeatherErr = ByWeather(t)
		return r.WeatherErr
	})
	g.Go(func() error {
		r.Weekend, r.WeekendErr = ByWeekend(t)
		return r.WeekendErr
	})
	g.Go(func() error {
		r.Daily, r.DailyErr = DailyTotals(t)
		return r.DailyErr
	})

	return &r, g.Wait()
}

func rentalCounts(t *dataset.Table) ([]float64, error) {
	counts, err := t.Ints(dataset.ColCount)
	if err != nil {
		return nil, err
	}
	if err := checkNonNegative(counts); err != nil {
		return nil, err
	}

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	return values, nil
}

func checkNonNegative(counts []int) error {
	for i, c := range counts {
		if c < 0 {
			return &dataset.TransformError{
				Column: dataset.ColCount,
				Row:    i + 1,
				Value:  strconv.Itoa(c),
				Reason: "negative rental count",
			}
		}
	}
	return nil
}

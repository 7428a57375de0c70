package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/pkg/models"
)

func TestWriteXLSX(t *testing.T) {
	r := &aggregate.Result{
		Weather: models.WeatherAggregate{{Weathersit: 1, Cnt: 75, Days: 2}},
		Weekend: models.WeekendAggregate{{IsWeekend: true, Cnt: 985, Days: 1}},
		Daily:   models.DailyTotal{{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Cnt: 150}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{WeatherSheet, WeekendSheet, DailySheet}, f.GetSheetList())

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Bike Rental Analysis", props.Title)
	assert.Equal(t, "bikereport", props.Creator)

	rows, err := f.GetRows(WeatherSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Weather Situation", "Label", "Average Rentals", "Days"}, rows[0])
	assert.Equal(t, []string{"1", "Clear", "75", "2"}, rows[1])

	rows, err = f.GetRows(WeekendSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Weekend", "985", "1"}, rows[1])

	rows, err = f.GetRows(DailySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-01-01", "150"}, rows[1])
}

func TestWriteXLSXFailedAggregation(t *testing.T) {
	r := &aggregate.Result{
		WeatherErr: errors.New("bad weather code"),
		Weekend:    models.WeekendAggregate{},
		Daily:      models.DailyTotal{},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(WeatherSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "unavailable: bad weather code", value)

	rows, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/pkg/models"
)

// Series colors, taken from the Blues, Oranges and Greens palettes
const (
	weatherColor = "#3182bd"
	weekendColor = "#e6550d"
	dailyColor   = "#31a354"
)

// WriteHTML renders the dashboard page. Charts whose aggregation failed are left out.
func WriteHTML(w io.Writer, r *aggregate.Result) error {
	page := components.NewPage()
	page.PageTitle = Header

	if r.WeatherErr == nil {
		page.AddCharts(weatherChart(r.Weather))
	}
	if r.WeekendErr == nil {
		page.AddCharts(weekendChart(r.Weekend))
	}
	if r.DailyErr == nil {
		page.AddCharts(dailyChart(r.Daily))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

func globalOptions(s Section) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Header,
			Width:     "1000px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    s.Title,
			Subtitle: strings.Join(s.Narrative, "\n"),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YLabel}),
	}
}

func weatherChart(rows models.WeatherAggregate) *charts.Bar {
	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, models.WeatherLabel(row.Weathersit))
		data = append(data, opts.BarData{Value: round2(row.Cnt)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(WeatherSection)...)
	bar.SetXAxis(labels).
		AddSeries(WeatherSection.YLabel, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: weatherColor}))
	return bar
}

func weekendChart(rows models.WeekendAggregate) *charts.Bar {
	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, models.DayTypeLabel(row.IsWeekend))
		data = append(data, opts.BarData{Value: round2(row.Cnt)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(WeekendSection)...)
	bar.SetXAxis(labels).
		AddSeries(WeekendSection.YLabel, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: weekendColor}))
	return bar
}

func dailyChart(rows models.DailyTotal) *charts.Line {
	labels := make([]string, 0, len(rows))
	data := make([]opts.LineData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Date.Format("2006-01-02"))
		data = append(data, opts.LineData{Value: row.Cnt})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(DailySection)...)
	line.SetXAxis(labels).
		AddSeries(DailySection.YLabel, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: dailyColor}))
	return line
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

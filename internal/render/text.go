package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/pkg/models"
)

const rule = "----------------------------------------"

// WriteText prints the report as fixed-width tables, each followed by its
// narrative. A failed aggregation prints its error in place of the table.
func WriteText(w io.Writer, r *aggregate.Result) error {
	tw := &textWriter{w: w}

	tw.printf("%s\n%s\n", Header, strings.Repeat("=", len(Header)))

	tw.section(WeatherSection, r.WeatherErr, func() {
		tw.printf("%-22s  %15s  %5s\n", WeatherSection.XLabel, WeatherSection.YLabel, "Days")
		tw.printf("%s\n", rule)
		for _, row := range r.Weather {
			label := fmt.Sprintf("%d %s", row.Weathersit, models.WeatherLabel(row.Weathersit))
			tw.printf("%-22s  %15s  %5d\n", label, formatMean(row.Cnt), row.Days)
		}
	})

	tw.section(WeekendSection, r.WeekendErr, func() {
		tw.printf("%-22s  %15s  %5s\n", WeekendSection.XLabel, WeekendSection.YLabel, "Days")
		tw.printf("%s\n", rule)
		for _, row := range r.Weekend {
			tw.printf("%-22s  %15s  %5d\n", models.DayTypeLabel(row.IsWeekend), formatMean(row.Cnt), row.Days)
		}
	})

	tw.section(DailySection, r.DailyErr, func() {
		tw.printf("%-22s  %15s\n", DailySection.XLabel, DailySection.YLabel)
		tw.printf("%s\n", rule)
		for _, row := range r.Daily {
			tw.printf("%-22s  %15s\n", row.Date.Format("2006-01-02"), humanize.Comma(int64(row.Cnt)))
		}
		tw.printf("%s\n", rule)
		tw.printf("Total: %s rentals (%s)\n", humanize.Comma(int64(r.Daily.Sum())), english.Plural(len(r.Daily), "day", ""))
	})

	tw.printf("\n%s\n", Caption)
	return tw.err
}

// formatMean rounds for display only
func formatMean(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// textWriter keeps the first write error so the layout code stays linear
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) section(s Section, aggErr error, table func()) {
	t.printf("\n%s\n%s\n", s.Heading, rule)
	if aggErr != nil {
		t.printf("unavailable: %v\n", aggErr)
		return
	}
	table()
	t.printf("\nConclusion:\n")
	for i, line := range s.Narrative {
		t.printf("%2d. %s\n", i+1, line)
	}
}

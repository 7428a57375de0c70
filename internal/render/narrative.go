package render

// Section describes one chart of the report and the text printed after it
type Section struct {
	Heading   string
	Title     string
	XLabel    string
	YLabel    string
	Narrative []string
}

// Dashboard header and footer
const (
	Header  = "Bike Rental Analysis Dashboard"
	Caption = "Copyright (c) Lailatus Syadiah"
)

var (
	WeatherSection = Section{
		Heading: "Weather Effects on Bike Rentals",
		Title:   "Average Bike Rentals by Weather Situation",
		XLabel:  "Weather Situation",
		YLabel:  "Average Rentals",
		Narrative: []string{
			"Clear weather: rentals peak on clear or lightly cloudy days, averaging about 4,876 bikes per day.",
			"Mist and overcast: rentals drop when it is misty or overcast, averaging about 4,035 bikes per day.",
			"Bad weather: light rain or snow cuts the average sharply, to about 1,803 bikes.",
			"Clear weather drives rentals up while bad weather holds them back.",
		},
	}

	WeekendSection = Section{
		Heading: "Bike Rentals: Weekday vs Weekend",
		Title:   "Average Bike Rentals: Weekday vs Weekend",
		XLabel:  "Day Type",
		YLabel:  "Average Rentals",
		Narrative: []string{
			"Weekdays: the average reaches 193 bikes per day.",
			"Weekends: the average is slightly lower at 181 bikes per day.",
			"Weekdays see more rentals, yet weekend demand stays healthy.",
		},
	}

	DailySection = Section{
		Heading: "Total Daily Bike Rentals Over Time",
		Title:   "Total Daily Bike Rentals Over Time",
		XLabel:  "Date",
		YLabel:  "Total Rentals",
		Narrative: []string{
			"Trend: the chart shows total rentals per day, with demand peaking on particular days.",
			"Seasonality: further analysis can identify seasonal patterns or the effect of external factors.",
		},
	}
)

package models

import "time"

// RentalRecord represents a single day's bike rentals
type RentalRecord struct {
	Date       time.Time `json:"date"`
	Weathersit int       `json:"weathersit"` // 1 clear .. 4 heavy rain
	Weekday    int       `json:"weekday"`    // 0..6, weekend is 5 and 6
	Count      int       `json:"cnt"`
}

// IsWeekend reports whether a weekday number falls on the weekend (5 or 6)
func IsWeekend(weekday int) bool {
	return weekday == 5 || weekday == 6
}

// WeatherRow is the mean rental count for one weather situation
type WeatherRow struct {
	Weathersit int     `json:"weathersit"`
	Cnt        float64 `json:"cnt"`
	Days       int     `json:"days"`
}

// WeatherAggregate holds one row per weather situation present in the source
type WeatherAggregate []WeatherRow

// WeekendRow is the mean rental count for weekdays or weekends
type WeekendRow struct {
	IsWeekend bool    `json:"is_weekend"`
	Cnt       float64 `json:"cnt"`
	Days      int     `json:"days"`
}

// WeekendAggregate holds at most two rows, weekdays first
type WeekendAggregate []WeekendRow

// DailyRow is the total rental count for one calendar date
type DailyRow struct {
	Date time.Time `json:"date"`
	Cnt  int       `json:"cnt"`
}

// DailyTotal holds one row per distinct date, ascending
type DailyTotal []DailyRow

// Sum returns the total rentals across all dates
func (d DailyTotal) Sum() int {
	total := 0
	for _, row := range d {
		total += row.Cnt
	}
	return total
}

// WeatherLabel returns a human-readable name for a weather situation code
func WeatherLabel(code int) string {
	switch code {
	case 1:
		return "Clear"
	case 2:
		return "Mist/Cloudy"
	case 3:
		return "Light Snow/Rain"
	case 4:
		return "Heavy Rain/Snow"
	default:
		return "Unknown"
	}
}

// DayTypeLabel returns "Weekend" or "Weekday"
func DayTypeLabel(isWeekend bool) string {
	if isWeekend {
		return "Weekend"
	}
	return "Weekday"
}

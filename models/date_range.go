package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

const (
	DateRangeNext7Days  = "next_7_days"
	DateRangeNext30Days = "next_30_days"
	DateRangeNext90Days = "next_90_days"
)

// DefaultDateRangeID is the preset selected when nothing else is chosen.
const DefaultDateRangeID = DateRangeNext90Days

// DateRange is one of the fixed presets anchored to "today".
type DateRange struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

var dateRangePresets = []struct {
	id   string
	name string
	days int
}{
	{DateRangeNext7Days, "Next 7 days", 7},
	{DateRangeNext30Days, "Next 30 days", 30},
	{DateRangeNext90Days, "Next 90 days", 90},
}

// TodayIn returns midnight of now's calendar date in the given zone.
func TodayIn(tz string, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}

// DateRangeOptions builds the presets for the given local "today".
func DateRangeOptions(today time.Time) []DateRange {
	out := make([]DateRange, 0, len(dateRangePresets))
	for _, p := range dateRangePresets {
		out = append(out, DateRange{
			ID:       p.id,
			Name:     p.name,
			DateFrom: today.Format(DateLayout),
			DateTo:   today.AddDate(0, 0, p.days).Format(DateLayout),
		})
	}
	return out
}

// FindDateRange returns the preset with the given id, or nil.
func FindDateRange(options []DateRange, id string) *DateRange {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

// IsDateRangeID reports whether id names one of the presets.
func IsDateRangeID(id string) bool {
	for _, p := range dateRangePresets {
		if p.id == id {
			return true
		}
	}
	return false
}

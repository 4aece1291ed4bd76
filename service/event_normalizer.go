package services

import (
	"time"

	"es-server/models"
	"es-server/util"
)

const EVENT_TIME_LAYOUT = "2006-01-02 15:04:05"

// NormalizeEvents flattens raw events into table rows, preserving order.
func NormalizeEvents(events []models.EventRecord) []models.EventRow {
	rows := make([]models.EventRow, 0, len(events))
	for i := range events {
		rows = append(rows, NormalizeEvent(events[i]))
	}
	return rows
}

// NormalizeEvent never fails: absent fields become "" or 0.
func NormalizeEvent(e models.EventRecord) models.EventRow {
	loc := eventLocation(e.Timezone)

	row := models.EventRow{
		Title:     e.Title,
		Category:  e.Category,
		Venue:     firstVenue(e.Entities),
		StartDate: formatEventTime(e.Start, loc),
		EndDate:   formatEventTime(e.End, loc),
	}

	if e.PredictedEnd != nil && e.Timezone != nil {
		row.PredictedEndDate = formatEventTime(*e.PredictedEnd, loc)
	}

	if e.PHQAttendance != nil {
		row.PredictedAttendance = *e.PHQAttendance
	}

	if s := e.PredictedEventSpendIndustries; s != nil {
		row.HospitalitySpend = util.FormatOptionalCurrency(s.Hospitality)
		row.AccommodationSpend = util.FormatOptionalCurrency(s.Accommodation)
		row.TransportationSpend = util.FormatOptionalCurrency(s.Transportation)
	}

	if e.Geo != nil && e.Geo.Placekey != nil {
		row.Placekey = *e.Geo.Placekey
	}

	return row
}

// SpendGaps names the industry fields missing from a present spend block.
func SpendGaps(e models.EventRecord) []string {
	s := e.PredictedEventSpendIndustries
	if s == nil {
		return nil
	}
	var gaps []string
	if s.Hospitality == nil {
		gaps = append(gaps, "hospitality")
	}
	if s.Accommodation == nil {
		gaps = append(gaps, "accommodation")
	}
	if s.Transportation == nil {
		gaps = append(gaps, "transportation")
	}
	return gaps
}

func firstVenue(entities []models.Entity) string {
	for _, entity := range entities {
		if entity.Type == models.EntityTypeVenue {
			return entity.Name
		}
	}
	return ""
}

// eventLocation returns nil when the zone is absent or unknown.
func eventLocation(tz *string) *time.Location {
	if tz == nil || *tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return nil
	}
	return loc
}

func formatEventTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(EVENT_TIME_LAYOUT)
}

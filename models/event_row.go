package models

import "strconv"

// EventRowHeader is the column order used by the table and every export.
var EventRowHeader = []string{
	"Title",
	"Predicted Attendance",
	"Category",
	"Venue",
	"Start Date",
	"End Date",
	"Predicted End Date",
	"Hospitality Spend",
	"Accommodation Spend",
	"Transportation Spend",
	"placekey",
}

// EventRow is a flattened event ready for display and export.
type EventRow struct {
	Title               string `json:"title"`
	PredictedAttendance int    `json:"predicted_attendance"`
	Category            string `json:"category"`
	Venue               string `json:"venue"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	PredictedEndDate    string `json:"predicted_end_date"`
	HospitalitySpend    string `json:"hospitality_spend"`
	AccommodationSpend  string `json:"accommodation_spend"`
	TransportationSpend string `json:"transportation_spend"`
	Placekey            string `json:"placekey"`
}

// Values returns the row's cells in EventRowHeader order.
func (r EventRow) Values() []string {
	return []string{
		r.Title,
		strconv.Itoa(r.PredictedAttendance),
		r.Category,
		r.Venue,
		r.StartDate,
		r.EndDate,
		r.PredictedEndDate,
		r.HospitalitySpend,
		r.AccommodationSpend,
		r.TransportationSpend,
		r.Placekey,
	}
}

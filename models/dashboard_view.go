package models

import "time"

// SpendMetrics is SpendTotal with display strings attached.
type SpendMetrics struct {
	Total                   int    `json:"total"`
	Hospitality             int    `json:"hospitality"`
	Accommodation           int    `json:"accommodation"`
	Transportation          int    `json:"transportation"`
	TotalFormatted          string `json:"total_formatted"`
	HospitalityFormatted    string `json:"hospitality_formatted"`
	AccommodationFormatted  string `json:"accommodation_formatted"`
	TransportationFormatted string `json:"transportation_formatted"`
}

// DashboardView is the result of one dashboard pass.
type DashboardView struct {
	Location     Location      `json:"location"`
	DateRange    DateRange     `json:"date_range"`
	Categories   []string      `json:"categories"`
	Radius       float64       `json:"radius"`
	RadiusUnit   RadiusUnit    `json:"radius_unit"`
	RadiusMeters float64       `json:"radius_meters"`
	Spend        SpendMetrics  `json:"spend"`
	Rows         []EventRow    `json:"rows"`
	Events       []EventRecord `json:"events,omitempty"`
	ExportStem   string        `json:"export_stem"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

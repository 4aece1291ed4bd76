package models

import "time"

// Session is the persisted interactive state of one dashboard user.
type Session struct {
	ID          string     `json:"id"`
	LocationID  string     `json:"location_id,omitempty"`
	DateRangeID string     `json:"date_range_id,omitempty"`
	Radius      *float64   `json:"radius,omitempty"`
	Categories  []string   `json:"categories"`
	Locations   []Location `json:"locations,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SelectionUpdate is a partial change to a session. Nil fields are left as is.
type SelectionUpdate struct {
	LocationID  *string  `json:"location_id,omitempty"`
	DateRangeID *string  `json:"date_range_id,omitempty"`
	Radius      *float64 `json:"radius,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// Selection is a session resolved against its locations and date presets.
// Any nil field means the dashboard is not ready to query yet.
type Selection struct {
	Location        *Location        `json:"location,omitempty"`
	DateRange       *DateRange       `json:"date_range,omitempty"`
	DateRanges      []DateRange      `json:"date_ranges,omitempty"`
	SuggestedRadius *SuggestedRadius `json:"suggested_radius,omitempty"`
	Radius          *float64         `json:"radius,omitempty"`
	Categories      []string         `json:"categories"`
}

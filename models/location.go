package models

import "fmt"

// DefaultSuggestedRadius is used when a saved location carries no radius.
const DefaultSuggestedRadius = 2.0

// Location is a saved location flattened for the dashboard.
type Location struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	TZ         string     `json:"tz"`
	Radius     float64    `json:"radius"`
	RadiusUnit RadiusUnit `json:"radius_unit"`
}

// SuggestedRadius is the provider-recommended radius for a location.
type SuggestedRadius struct {
	Radius     float64    `json:"radius"`
	RadiusUnit RadiusUnit `json:"radius_unit"`
}

func (l *Location) SuggestedRadius() SuggestedRadius {
	return SuggestedRadius{Radius: l.Radius, RadiusUnit: l.RadiusUnit}
}

func (l *Location) ToString() string {
	return fmt.Sprintf("Location(id=%s, name=%s, lat=%f, lon=%f, tz=%s)",
		l.ID, l.Name, l.Lat, l.Lon, l.TZ)
}

// FindLocation returns the location with the given id, or nil.
func FindLocation(locations []Location, id string) *Location {
	for i := range locations {
		if locations[i].ID == id {
			return &locations[i]
		}
	}
	return nil
}

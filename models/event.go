package models

import (
	"encoding/json"
	"time"
)

// EntityTypeVenue tags the venue entity among an event's entities.
const EntityTypeVenue = "venue"

// EventsResponse matches the events search response.
type EventsResponse struct {
	Count   int           `json:"count"`
	Next    *string       `json:"next"`
	Results []EventRecord `json:"results"`
}

// EventRecord is a single raw event as returned by the events API.
type EventRecord struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	PredictedEnd *time.Time `json:"predicted_end,omitempty"`
	Timezone     *string    `json:"timezone"`
	Entities     []Entity   `json:"entities"`

	// Location is the event point, ordered lon, lat.
	Location []float64 `json:"location,omitempty"`

	PHQAttendance                 *int             `json:"phq_attendance"`
	PredictedEventSpend           *int             `json:"predicted_event_spend,omitempty"`
	PredictedEventSpendIndustries *SpendIndustries `json:"predicted_event_spend_industries,omitempty"`
	Geo                           *EventGeo        `json:"geo,omitempty"`
}

type Entity struct {
	EntityID         string `json:"entity_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// SpendIndustries is the per-industry predicted spend breakdown.
type SpendIndustries struct {
	Accommodation  *int `json:"accommodation"`
	Hospitality    *int `json:"hospitality"`
	Transportation *int `json:"transportation"`
}

type EventGeo struct {
	Geometry *EventGeometry `json:"geometry,omitempty"`
	Placekey *string        `json:"placekey,omitempty"`
}

// EventGeometry is any GeoJSON geometry. Coordinates stay raw because area
// events (weather, disasters) carry polygons rather than a point.
type EventGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

// PointCoordinates returns lon, lat for a Point geometry.
func (g *EventGeometry) PointCoordinates() (lon, lat float64, ok bool) {
	if g == nil || g.Type != "Point" {
		return 0, 0, false
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) < 2 {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}

// Point returns the event coordinates, preferring the top level location.
func (e *EventRecord) Point() (lat, lon float64, ok bool) {
	if len(e.Location) == 2 {
		return e.Location[1], e.Location[0], true
	}
	if e.Geo != nil {
		if lon, lat, ok := e.Geo.Geometry.PointCoordinates(); ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

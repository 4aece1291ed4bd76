package models

// SavedLocationsResponse matches the GET /saved-locations response.
type SavedLocationsResponse struct {
	Count     int             `json:"count"`
	Locations []SavedLocation `json:"locations"`
}

// SavedLocation is a single entry of the "locations" array.
type SavedLocation struct {
	LocationID       string           `json:"location_id"`
	Name             string           `json:"name"`
	FormattedAddress string           `json:"formatted_address"`
	GeoJSON          SavedLocationGeo `json:"geojson"`
}

type SavedLocationGeo struct {
	Type       string                  `json:"type"`
	Geometry   Geometry                `json:"geometry"`
	Properties SavedLocationProperties `json:"properties"`
}

// Geometry is a GeoJSON point; Coordinates are ordered lon, lat.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type SavedLocationProperties struct {
	Radius     *float64 `json:"radius"`
	RadiusUnit string   `json:"radius_unit"`
}

package services

import (
	"context"
	"fmt"

	"es-server/api/predicthq"
	"es-server/models"

	"go.uber.org/zap"
)

// LocationService lists the account's saved locations in dashboard form.
type LocationService struct {
	api             predicthq.PredictHQAPI
	tz              TimezoneResolver
	pageSize        int
	defaultTimezone string
	logger          *zap.Logger
}

func NewLocationService(
	api predicthq.PredictHQAPI,
	tz TimezoneResolver,
	pageSize int,
	defaultTimezone string,
	logger *zap.Logger) *LocationService {

	return &LocationService{
		api:             api,
		tz:              tz,
		pageSize:        pageSize,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// ListLocations fetches one page of saved locations. Entries without a
// usable point are skipped.
func (ls *LocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	if !ls.api.HasCredentials() {
		return nil, ErrMissingCredential
	}

	response, err := ls.api.GetSavedLocations(ctx, ls.pageSize)
	if err != nil {
		ls.logger.Error("[LocationService] Failed to fetch saved locations", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch saved locations: %w", err)
	}

	locations := make([]models.Location, 0, len(response.Locations))
	for _, saved := range response.Locations {
		loc, ok := ls.normalize(saved)
		if !ok {
			continue
		}
		ls.logger.Debug("[LocationService] Location normalized", zap.String("location", loc.ToString()))
		locations = append(locations, loc)
	}
	ls.logger.Debug("[LocationService] Saved locations loaded", zap.Int("count", len(locations)))
	return locations, nil
}

func (ls *LocationService) normalize(saved models.SavedLocation) (models.Location, bool) {
	coords := saved.GeoJSON.Geometry.Coordinates
	if len(coords) < 2 {
		ls.logger.Warn("[LocationService] Saved location has no coordinates, skipping",
			zap.String("location_id", saved.LocationID))
		return models.Location{}, false
	}
	lon, lat := coords[0], coords[1]

	radius := models.DefaultSuggestedRadius
	if saved.GeoJSON.Properties.Radius != nil {
		radius = *saved.GeoJSON.Properties.Radius
	}

	unit, err := models.ParseRadiusUnit(saved.GeoJSON.Properties.RadiusUnit)
	if err != nil {
		ls.logger.Warn("[LocationService] Unrecognized radius unit, distances pass through unconverted",
			zap.String("location_id", saved.LocationID), zap.Error(err))
	}

	tz, ok := ls.tz.Resolve(lat, lon)
	if !ok {
		ls.logger.Warn("[LocationService] No timezone for location, using default",
			zap.String("location_id", saved.LocationID), zap.String("timezone", ls.defaultTimezone))
		tz = ls.defaultTimezone
	}

	return models.Location{
		ID:         saved.LocationID,
		Name:       saved.Name,
		Address:    saved.FormattedAddress,
		Lat:        lat,
		Lon:        lon,
		TZ:         tz,
		Radius:     radius,
		RadiusUnit: unit,
	}, true
}

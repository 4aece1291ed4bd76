package predicthq

import (
	"context"

	"es-server/models"
)

// PredictHQAPI defines the interface for interacting with the events API
type PredictHQAPI interface {
	HasCredentials() bool
	GetSavedLocations(ctx context.Context, limit int) (*models.SavedLocationsResponse, error)
	GetEventSpendTotal(ctx context.Context, params models.SpendTotalParams) (*models.SpendTotal, error)
	SearchEvents(ctx context.Context, params models.EventSearchParams) (*models.EventsResponse, error)
}

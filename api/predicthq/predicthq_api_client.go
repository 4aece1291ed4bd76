package predicthq

import (
	"context"
	"net/url"
	"strconv"

	"es-server/api"
	"es-server/models"
)

// Endpoints holds the API paths, relative to the client's base URL.
type Endpoints struct {
	SavedLocations string
	Events         string
	SpendTotal     string
}

// PredictHQApiClient embeds the common HTTPClient
type PredictHQApiClient struct {
	*api.HTTPClient
	endpoints Endpoints
}

// NewPredictHQApiClient creates a new instance of PredictHQApiClient
func NewPredictHQApiClient(httpClient *api.HTTPClient, endpoints Endpoints) *PredictHQApiClient {
	return &PredictHQApiClient{
		HTTPClient: httpClient,
		endpoints:  endpoints,
	}
}

func (c *PredictHQApiClient) HasCredentials() bool {
	return c.HasToken()
}

// GetSavedLocations retrieves the first page of saved locations, sorted by name
func (c *PredictHQApiClient) GetSavedLocations(ctx context.Context, limit int) (*models.SavedLocationsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", "0")
	q.Set("q", "")
	q.Set("sort", "name")
	q.Set("subscription_valid_types", "events")

	var response models.SavedLocationsResponse
	if err := c.Request(ctx, "GET", c.endpoints.SavedLocations, q, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetEventSpendTotal retrieves the aggregate predicted spend for the filters
func (c *PredictHQApiClient) GetEventSpendTotal(ctx context.Context, params models.SpendTotalParams) (*models.SpendTotal, error) {
	var response models.SpendTotal
	if err := c.Request(ctx, "GET", c.endpoints.SpendTotal, params.ToValues(), nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchEvents retrieves the detailed event list for the filters
func (c *PredictHQApiClient) SearchEvents(ctx context.Context, params models.EventSearchParams) (*models.EventsResponse, error) {
	var response models.EventsResponse
	if err := c.Request(ctx, "GET", c.endpoints.Events, params.ToValues(), nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

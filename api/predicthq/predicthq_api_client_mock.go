package predicthq

import (
	"context"
	"io/fs"
	"sync"

	"es-server/models"
	"es-server/resources"
	"es-server/util"
)

// PredictHQApiClientMock serves canned responses from a file system
type PredictHQApiClientMock struct {
	fsys fs.FS

	mu    sync.Mutex
	calls map[string]int
}

// NewPredictHQApiClientMock creates a mock backed by the embedded resources
func NewPredictHQApiClientMock() *PredictHQApiClientMock {
	return NewPredictHQApiClientMockFS(resources.FS)
}

// NewPredictHQApiClientMockFS creates a mock backed by fsys
func NewPredictHQApiClientMockFS(fsys fs.FS) *PredictHQApiClientMock {
	return &PredictHQApiClientMock{fsys: fsys, calls: make(map[string]int)}
}

func (c *PredictHQApiClientMock) HasCredentials() bool {
	return true
}

// Calls returns how many times the named method was invoked
func (c *PredictHQApiClientMock) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *PredictHQApiClientMock) record(method string) {
	c.mu.Lock()
	c.calls[method]++
	c.mu.Unlock()
}

func (c *PredictHQApiClientMock) GetSavedLocations(ctx context.Context, limit int) (*models.SavedLocationsResponse, error) {
	c.record("GetSavedLocations")
	response, err := util.ReadSavedLocationsResponseFromJSON(c.fsys, resources.SAVED_LOCATIONS_RESPONSE_RESOURCE)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(response.Locations) > limit {
		response.Locations = response.Locations[:limit]
	}
	return response, nil
}

func (c *PredictHQApiClientMock) GetEventSpendTotal(ctx context.Context, params models.SpendTotalParams) (*models.SpendTotal, error) {
	c.record("GetEventSpendTotal")
	return util.ReadSpendTotalFromJSON(c.fsys, resources.SPEND_TOTAL_RESPONSE_RESOURCE)
}

func (c *PredictHQApiClientMock) SearchEvents(ctx context.Context, params models.EventSearchParams) (*models.EventsResponse, error) {
	c.record("SearchEvents")
	return util.ReadEventsResponseFromJSON(c.fsys, resources.EVENTS_RESPONSE_RESOURCE)
}

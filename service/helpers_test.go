package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"es-server/api/predicthq"
	daoredis "es-server/dao/redis"
	"es-server/db"
	"es-server/models"

	"go.uber.org/zap"
)

var testNow = time.Date(2024, 1, 30, 15, 0, 0, 0, time.UTC)

var errUpstream = errors.New("upstream unavailable")

// stubAPI wraps the fixture mock so individual calls can be made to fail.
type stubAPI struct {
	*predicthq.PredictHQApiClientMock
	noCredentials bool
	locationsErr  error
	spendErr      error
	eventsErr     error

	// beforeSearch runs inside SearchEvents, between the two dashboard queries.
	beforeSearch func()
}

func newStubAPI() *stubAPI {
	return &stubAPI{PredictHQApiClientMock: predicthq.NewPredictHQApiClientMock()}
}

func (s *stubAPI) HasCredentials() bool {
	return !s.noCredentials
}

func (s *stubAPI) GetSavedLocations(ctx context.Context, limit int) (*models.SavedLocationsResponse, error) {
	if s.locationsErr != nil {
		return nil, s.locationsErr
	}
	return s.PredictHQApiClientMock.GetSavedLocations(ctx, limit)
}

func (s *stubAPI) GetEventSpendTotal(ctx context.Context, params models.SpendTotalParams) (*models.SpendTotal, error) {
	if s.spendErr != nil {
		return nil, s.spendErr
	}
	return s.PredictHQApiClientMock.GetEventSpendTotal(ctx, params)
}

func (s *stubAPI) SearchEvents(ctx context.Context, params models.EventSearchParams) (*models.EventsResponse, error) {
	if s.beforeSearch != nil {
		s.beforeSearch()
	}
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	return s.PredictHQApiClientMock.SearchEvents(ctx, params)
}

type testServices struct {
	api        *stubAPI
	redis      *db.MockRedisClient
	locations  *LocationService
	selections *SelectionService
	dashboard  *DashboardService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	logger := zap.NewNop()
	api := newStubAPI()
	redisClient := db.NewMockRedisClient()
	dao := daoredis.NewRedisSessionDAO(redisClient, time.Hour)

	locations := NewLocationService(api, FixedTimezoneResolver("America/New_York"), 10, "America/New_York", logger)
	selections := NewSelectionService(dao, locations, "America/New_York", logger)
	selections.SetClock(func() time.Time { return testNow })
	dashboard := NewDashboardService(api, selections, NewQueryBuilder(500), logger)

	return &testServices{
		api:        api,
		redis:      redisClient,
		locations:  locations,
		selections: selections,
		dashboard:  dashboard,
	}
}

func ptr[T any](v T) *T { return &v }

package predicthq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"es-server/api"
	"es-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoints = Endpoints{
	SavedLocations: "/saved-locations",
	Events:         "/v1/events/",
	SpendTotal:     "/v1/events/spend-total/",
}

func TestGetSavedLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET; got %s", r.Method)
		}
		if r.URL.Path != "/saved-locations" {
			t.Errorf("expected path /saved-locations; got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q; want Bearer secret", got)
		}

		q := r.URL.Query()
		checks := map[string]string{
			"limit":                    "10",
			"offset":                   "0",
			"sort":                     "name",
			"subscription_valid_types": "events",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("query[%q] = %q; want %q", k, got, want)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"locations": [{"location_id": "loc-1", "name": "Arena",
			"geojson": {"geometry": {"coordinates": [-74.0, 40.7]}, "properties": {"radius": 2, "radius_unit": "mi"}}}]}`))
	}))
	defer srv.Close()

	client := NewPredictHQApiClient(api.NewHTTPClient(srv.URL, "secret", time.Second), testEndpoints)
	require.True(t, client.HasCredentials())

	got, err := client.GetSavedLocations(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got.Locations, 1)
	assert.Equal(t, "loc-1", got.Locations[0].LocationID)
}

func TestGetEventSpendTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events/spend-total/" {
			t.Errorf("expected spend-total path; got %s", r.URL.Path)
		}
		q := r.URL.Query()
		assert.Equal(t, "40.7", q.Get("lat"))
		assert.Equal(t, "-74", q.Get("lon"))
		assert.Equal(t, "2.5", q.Get("radius"))
		assert.Equal(t, "concerts,sports", q.Get("category"))
		assert.Equal(t, "America/New_York", q.Get("tz"))

		json.NewEncoder(w).Encode(models.SpendTotal{SpendTotal: 10, SpendHospitality: 5, SpendAccommodation: 3, SpendTransportation: 2})
	}))
	defer srv.Close()

	client := NewPredictHQApiClient(api.NewHTTPClient(srv.URL, "secret", time.Second), testEndpoints)
	got, err := client.GetEventSpendTotal(context.Background(), models.SpendTotalParams{
		Lat: 40.7, Lon: -74, Radius: 2.5,
		DateFrom: "2024-01-01", DateTo: "2024-03-31",
		Categories: []string{"concerts", "sports"},
		TZ:         "America/New_York",
	})

	require.NoError(t, err)
	assert.Equal(t, &models.SpendTotal{SpendTotal: 10, SpendHospitality: 5, SpendAccommodation: 3, SpendTransportation: 2}, got)
}

func TestSearchEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events/" {
			t.Errorf("expected events path; got %s", r.URL.Path)
		}
		q := r.URL.Query()
		assert.Equal(t, "2km@-33.8,151.2", q.Get("within"))
		assert.Equal(t, "2024-01-01", q.Get("active.gte"))
		assert.Equal(t, "2024-01-08", q.Get("active.lte"))
		assert.Equal(t, "Australia/Sydney", q.Get("active.tz"))

		w.Write([]byte(`{"count": 1, "results": [{"id": "e1", "title": "Show", "start": "2024-01-02T09:00:00Z", "end": "2024-01-02T11:00:00Z", "timezone": "Australia/Sydney"}]}`))
	}))
	defer srv.Close()

	client := NewPredictHQApiClient(api.NewHTTPClient(srv.URL, "secret", time.Second), testEndpoints)
	got, err := client.SearchEvents(context.Background(), models.EventSearchParams{
		Lat: -33.8, Lon: 151.2, Radius: 2, RadiusUnit: models.RadiusUnitKilometers,
		DateFrom: "2024-01-01", DateTo: "2024-01-08",
		TZ: "Australia/Sydney",
	})

	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Show", got.Results[0].Title)
	require.NotNil(t, got.Results[0].Timezone)
	assert.Equal(t, "Australia/Sydney", *got.Results[0].Timezone)
}

func TestSearchEvents_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewPredictHQApiClient(api.NewHTTPClient(srv.URL, "bad", time.Second), testEndpoints)
	got, err := client.SearchEvents(context.Background(), models.EventSearchParams{})

	assert.Nil(t, got)
	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestHasCredentials_NoToken(t *testing.T) {
	client := NewPredictHQApiClient(api.NewHTTPClient("http://unused", "", time.Second), testEndpoints)
	assert.False(t, client.HasCredentials())
}

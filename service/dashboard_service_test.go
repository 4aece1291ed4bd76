package services

import (
	"context"
	"testing"

	"es-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRun_Success(t *testing.T) {
	// Arrange
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)

	// Act
	result, err := svc.dashboard.Run(ctx, session.ID)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.Stale)
	require.NotNil(t, result.View)

	view := result.View
	assert.Equal(t, "loc-nyc-msg", view.Location.ID)
	assert.Equal(t, "2024-01-30", view.DateRange.DateFrom)
	assert.Equal(t, "2024-04-29", view.DateRange.DateTo)
	assert.Equal(t, 1.5, view.Radius)
	assert.Equal(t, models.RadiusUnitMiles, view.RadiusUnit)
	assert.InDelta(t, 2413.5, view.RadiusMeters, 1e-9)
	assert.Equal(t, 1234567, view.Spend.Total)
	assert.Equal(t, "$1,234,567", view.Spend.TotalFormatted)
	assert.Equal(t, "$700,000", view.Spend.HospitalityFormatted)
	assert.Len(t, view.Rows, 4)
	assert.Len(t, view.Events, 4)
	assert.Equal(t, "events-loc-nyc-msg-2024-01-30-to-2024-04-29", view.ExportStem)
	assert.Equal(t, testNow, view.GeneratedAt)

	assert.Equal(t, 1, svc.api.Calls("GetEventSpendTotal"))
	assert.Equal(t, 1, svc.api.Calls("SearchEvents"))

	last, err := svc.selections.LastView(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, view.ExportStem, last.ExportStem)
}

func TestDashboardRun_KeepsSelectionChangedDuringPass(t *testing.T) {
	// Arrange
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)
	svc.api.beforeSearch = func() {
		_, _, err := svc.selections.UpdateSelection(ctx, session.ID, models.SelectionUpdate{Radius: ptr(5.0)})
		require.NoError(t, err)
	}

	// Act
	result, err := svc.dashboard.Run(ctx, session.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1.5, result.View.Radius, "the pass renders the selection it read")

	stored, err := svc.selections.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Radius)
	assert.Equal(t, 5.0, *stored.Radius)
}

func TestDashboardRun_MissingCredential(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)
	svc.api.noCredentials = true

	result, err := svc.dashboard.Run(ctx, session.ID)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Nil(t, result)
	assert.Equal(t, 0, svc.api.Calls("GetEventSpendTotal"))
	assert.Equal(t, 0, svc.api.Calls("SearchEvents"))
}

func TestDashboardRun_NotReadyMakesNoCalls(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)

	session.DateRangeID = ""
	require.NoError(t, svc.selections.SaveSession(ctx, session))

	result, err := svc.dashboard.Run(ctx, session.ID)

	assert.ErrorIs(t, err, ErrNotReady)
	assert.Nil(t, result)
	assert.Equal(t, 0, svc.api.Calls("GetEventSpendTotal"))
	assert.Equal(t, 0, svc.api.Calls("SearchEvents"))
}

func TestDashboardRun_NoLocationsIsNotReady(t *testing.T) {
	svc := newTestServices(t)
	svc.api.locationsErr = errUpstream
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.dashboard.Run(ctx, session.ID)

	assert.ErrorIs(t, err, ErrNotReady)
	var notReady *NotReadyError
	require.ErrorAs(t, err, &notReady)
	require.Len(t, notReady.Warnings, 1)
	assert.Contains(t, notReady.Warnings[0], "Could not load saved locations")
	assert.Equal(t, 0, svc.api.Calls("GetEventSpendTotal"))
}

func TestDashboardRun_SpendFailureWithoutPreviousView(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)
	svc.api.spendErr = errUpstream

	result, err := svc.dashboard.Run(ctx, session.ID)

	require.NoError(t, err)
	assert.Nil(t, result.View)
	assert.False(t, result.Stale)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "spend total")
	assert.Equal(t, 0, svc.api.Calls("SearchEvents"), "events are not fetched after the spend query fails")
}

func TestDashboardRun_FailureReturnsPreviousView(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	session, _, err := svc.selections.CreateSession(ctx)
	require.NoError(t, err)

	first, err := svc.dashboard.Run(ctx, session.ID)
	require.NoError(t, err)

	svc.api.eventsErr = errUpstream
	second, err := svc.dashboard.Run(ctx, session.ID)

	require.NoError(t, err)
	assert.True(t, second.Stale)
	require.NotNil(t, second.View)
	assert.Equal(t, first.View.ExportStem, second.View.ExportStem)
	assert.Len(t, second.View.Rows, 4)
	require.Len(t, second.Warnings, 1)
	assert.Contains(t, second.Warnings[0], "upstream unavailable")
}

func TestDashboardRun_UnknownSession(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.dashboard.Run(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSpendMetrics(t *testing.T) {
	metrics := NewSpendMetrics(models.SpendTotal{
		SpendTotal:          1000,
		SpendHospitality:    600,
		SpendAccommodation:  300,
		SpendTransportation: 100,
	})

	assert.Equal(t, "$1,000", metrics.TotalFormatted)
	assert.Equal(t, "$600", metrics.HospitalityFormatted)
	assert.Equal(t, "$300", metrics.AccommodationFormatted)
	assert.Equal(t, "$100", metrics.TransportationFormatted)
}

package services

import (
	"context"
	"fmt"

	"es-server/api/predicthq"
	"es-server/models"
	"es-server/util"

	"go.uber.org/zap"
)

const EXPORT_STEM_FORMAT = "events-%s-%s-to-%s"

// DashboardResult is the outcome of one dashboard pass. Stale is set when
// the pass failed and View is the session's previous render.
type DashboardResult struct {
	Selection models.Selection      `json:"selection"`
	View      *models.DashboardView `json:"view,omitempty"`
	Warnings  []string              `json:"warnings,omitempty"`
	Stale     bool                  `json:"stale,omitempty"`
}

// DashboardService runs the spend-total and event-list queries for a session.
type DashboardService struct {
	api        predicthq.PredictHQAPI
	selections *SelectionService
	queries    *QueryBuilder
	logger     *zap.Logger
}

func NewDashboardService(
	api predicthq.PredictHQAPI,
	selections *SelectionService,
	queries *QueryBuilder,
	logger *zap.Logger) *DashboardService {

	return &DashboardService{
		api:        api,
		selections: selections,
		queries:    queries,
		logger:     logger,
	}
}

// Run executes a pass: spend total first, then the event list. Without a
// credential nothing is read; an incomplete selection returns a
// *NotReadyError before any API call. The session itself is only read: the
// rendered view is stored under its own key.
func (ds *DashboardService) Run(ctx context.Context, sessionID string) (*DashboardResult, error) {
	if !ds.api.HasCredentials() {
		return nil, ErrMissingCredential
	}

	session, err := ds.selections.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	warnings, err := ds.selections.Refresh(ctx, session)
	if err != nil {
		return nil, err
	}

	sel, err := ds.selections.Resolve(session)
	if err != nil {
		return nil, err
	}

	qs, ok := ds.queries.BuildQueries(sel)
	if !ok {
		return nil, &NotReadyError{Warnings: warnings}
	}

	result := &DashboardResult{Selection: sel, Warnings: warnings}

	spend, err := ds.api.GetEventSpendTotal(ctx, qs.SpendTotal)
	if err != nil {
		return ds.fallback(ctx, session.ID, result, "spend total", err), nil
	}

	events, err := ds.api.SearchEvents(ctx, qs.Events)
	if err != nil {
		return ds.fallback(ctx, session.ID, result, "events", err), nil
	}

	for _, e := range events.Results {
		if gaps := SpendGaps(e); len(gaps) > 0 {
			ds.logger.Warn("[DashboardService] Event spend breakdown incomplete",
				zap.String("event_id", e.ID), zap.Strings("missing", gaps))
		}
	}

	view := &models.DashboardView{
		Location:     *sel.Location,
		DateRange:    *sel.DateRange,
		Categories:   sel.Categories,
		Radius:       *sel.Radius,
		RadiusUnit:   sel.SuggestedRadius.RadiusUnit,
		RadiusMeters: util.ToMeters(*sel.Radius, sel.SuggestedRadius.RadiusUnit),
		Spend:        NewSpendMetrics(*spend),
		Rows:         NormalizeEvents(events.Results),
		Events:       events.Results,
		ExportStem:   ExportStem(sel.Location.ID, *sel.DateRange),
		GeneratedAt:  ds.selections.now().UTC(),
	}
	result.View = view

	if err := ds.selections.StoreView(ctx, session.ID, view); err != nil {
		ds.logger.Warn("[DashboardService] Failed to store last view",
			zap.String("session_id", session.ID), zap.Error(err))
	}

	ds.logger.Info("[DashboardService] Dashboard pass complete",
		zap.String("session_id", session.ID),
		zap.String("location_id", view.Location.ID),
		zap.Int("events", len(view.Rows)))
	return result, nil
}

func (ds *DashboardService) fallback(ctx context.Context, sessionID string, result *DashboardResult, stage string, err error) *DashboardResult {
	ds.logger.Error("[DashboardService] Dashboard pass failed",
		zap.String("session_id", sessionID), zap.String("stage", stage), zap.Error(err))
	result.Warnings = append(result.Warnings, fmt.Sprintf("Could not load %s: %v", stage, err))

	last, viewErr := ds.selections.LastView(ctx, sessionID)
	if viewErr != nil {
		ds.logger.Warn("[DashboardService] Failed to read last view",
			zap.String("session_id", sessionID), zap.Error(viewErr))
		return result
	}
	if last != nil {
		result.View = last
		result.Stale = true
	}
	return result
}

// NewSpendMetrics attaches display strings to a spend total.
func NewSpendMetrics(st models.SpendTotal) models.SpendMetrics {
	return models.SpendMetrics{
		Total:                   st.SpendTotal,
		Hospitality:             st.SpendHospitality,
		Accommodation:           st.SpendAccommodation,
		Transportation:          st.SpendTransportation,
		TotalFormatted:          util.FormatCurrency(st.SpendTotal),
		HospitalityFormatted:    util.FormatCurrency(st.SpendHospitality),
		AccommodationFormatted:  util.FormatCurrency(st.SpendAccommodation),
		TransportationFormatted: util.FormatCurrency(st.SpendTransportation),
	}
}

// ExportStem names export files after the location and date window.
func ExportStem(locationID string, dr models.DateRange) string {
	return fmt.Sprintf(EXPORT_STEM_FORMAT, locationID, dr.DateFrom, dr.DateTo)
}

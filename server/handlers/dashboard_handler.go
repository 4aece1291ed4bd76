package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"es-server/export"
	"es-server/models"
	services "es-server/service"
	"es-server/util"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const FORMAT_QUERY_ARG = "format"

// DashboardResponse is the JSON form of a dashboard pass.
type DashboardResponse struct {
	Status    string                `json:"status"`
	Selection models.Selection      `json:"selection"`
	View      *models.DashboardView `json:"view,omitempty"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// DashboardHandler serves the metrics, the map page and the exports.
type DashboardHandler struct {
	dashboard *services.DashboardService
	exporter  export.EventExporter
	logger    *zap.Logger
}

func NewDashboardHandler(
	dashboard *services.DashboardService,
	exporter export.EventExporter,
	logger *zap.Logger) *DashboardHandler {

	return &DashboardHandler{dashboard: dashboard, exporter: exporter, logger: logger}
}

// GetDashboard handles GET /v1/sessions/{id}/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.Run(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	// Raw events only feed the map page.
	var view *models.DashboardView
	if result.View != nil {
		v := *result.View
		v.Events = nil
		view = &v
	}
	writeJSON(w, h.logger, http.StatusOK, DashboardResponse{
		Status:    dashboardStatus(result),
		Selection: result.Selection,
		View:      view,
		Warnings:  result.Warnings,
	})
}

// GetMap handles GET /v1/sessions/{id}/map and renders an HTML page.
func (h *DashboardHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	view, ok := h.runForView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := util.RenderDashboardPage(&buf, *view); err != nil {
		writeServiceError(w, h.logger, fmt.Errorf("failed to render map: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("[DashboardHandler] Error writing map page", zap.Error(err))
	}
}

// ExportEvents handles GET /v1/sessions/{id}/events/export?format=csv|xlsx|pdf
func (h *DashboardHandler) ExportEvents(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get(FORMAT_QUERY_ARG)
	if err := export.ValidateFormat(format); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	view, ok := h.runForView(w, r)
	if !ok {
		return
	}

	data, filename, mime, err := h.exporter.Export(format, view.ExportStem, view.Rows)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("[DashboardHandler] Error writing export", zap.Error(err))
	}
}

// runForView runs a pass and writes the response itself unless a view
// (fresh or previous) is available.
func (h *DashboardHandler) runForView(w http.ResponseWriter, r *http.Request) (*models.DashboardView, bool) {
	result, err := h.dashboard.Run(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return nil, false
	}
	if result.View == nil {
		writeJSON(w, h.logger, http.StatusBadGateway, StatusResponse{Status: STATUS_UNAVAILABLE, Warnings: result.Warnings})
		return nil, false
	}
	if result.Stale {
		w.Header().Set("Warning", `110 - "Response is Stale"`)
	}
	return result.View, true
}

func dashboardStatus(result *services.DashboardResult) string {
	switch {
	case result.View == nil:
		return STATUS_UNAVAILABLE
	case result.Stale:
		return STATUS_STALE
	default:
		return STATUS_OK
	}
}

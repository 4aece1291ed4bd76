package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"es-server/models"
	services "es-server/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	SESSION_ID_PATH_VAR     = "id"
	SESSION_ID_QUERY_ARG    = "session_id"
	LOCATION_ID_QUERY_ARG   = "location_id"
	MAX_SELECTION_BODY_SIZE = 1 << 16
)

// SessionResponse is a session plus the resolved selection the controls
// should display.
type SessionResponse struct {
	Session   models.Session   `json:"session"`
	Selection models.Selection `json:"selection"`
	Warnings  []string         `json:"warnings,omitempty"`
}

type LocationsResponse struct {
	Locations []models.Location `json:"locations"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type DateRangesResponse struct {
	DateRanges []models.DateRange `json:"date_ranges"`
	Default    string             `json:"default"`
}

// ControlsHandler serves the dashboard's selection controls.
type ControlsHandler struct {
	selections *services.SelectionService
	logger     *zap.Logger
}

func NewControlsHandler(selections *services.SelectionService, logger *zap.Logger) *ControlsHandler {
	return &ControlsHandler{selections: selections, logger: logger}
}

// Ping handles GET /ping
func (h *ControlsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "pong"})
}

// GetCategories handles GET /v1/categories
func (h *ControlsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, models.Categories())
}

// GetLocations handles GET /v1/locations?session_id=
func (h *ControlsHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get(SESSION_ID_QUERY_ARG)
	if sessionID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Missing argument " + SESSION_ID_QUERY_ARG})
		return
	}

	locations, warnings, err := h.selections.Locations(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	writeJSON(w, h.logger, http.StatusOK, LocationsResponse{Locations: locations, Warnings: warnings})
}

// GetDateRanges handles GET /v1/date-ranges. Presets follow the session's
// location, or location_id when given, else the default timezone.
func (h *ControlsHandler) GetDateRanges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sessionID := query.Get(SESSION_ID_QUERY_ARG)
	locationID := query.Get(LOCATION_ID_QUERY_ARG)

	var session *models.Session
	if sessionID != "" {
		var err error
		if session, err = h.selections.GetSession(r.Context(), sessionID); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
	} else {
		session = &models.Session{}
	}
	if locationID != "" {
		if models.FindLocation(session.Locations, locationID) == nil {
			writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Unknown location %q", locationID)})
			return
		}
		session.LocationID = locationID
	}
	session.DateRangeID = models.DefaultDateRangeID

	sel, err := h.selections.Resolve(session)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, DateRangesResponse{DateRanges: sel.DateRanges, Default: models.DefaultDateRangeID})
}

// CreateSession handles POST /v1/sessions
func (h *ControlsHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, warnings, err := h.selections.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeSession(w, http.StatusCreated, session, warnings)
}

// GetSession handles GET /v1/sessions/{id}
func (h *ControlsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.selections.GetSession(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeSession(w, http.StatusOK, session, nil)
}

// DeleteSession handles DELETE /v1/sessions/{id}
func (h *ControlsHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.selections.DeleteSession(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR]); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSelection handles PUT /v1/sessions/{id}/selection
func (h *ControlsHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var update models.SelectionUpdate
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_SELECTION_BODY_SIZE))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid selection body: " + err.Error()})
		return
	}

	session, warnings, err := h.selections.UpdateSelection(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR], update)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.writeSession(w, http.StatusOK, session, warnings)
}

func (h *ControlsHandler) writeSession(w http.ResponseWriter, status int, session *models.Session, warnings []string) {
	sel, err := h.selections.Resolve(session)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, status, SessionResponse{Session: *session, Selection: sel, Warnings: warnings})
}

package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ControlsRoutes are the selection and session endpoints.
type ControlsRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetCategories(w http.ResponseWriter, r *http.Request)
	GetLocations(w http.ResponseWriter, r *http.Request)
	GetDateRanges(w http.ResponseWriter, r *http.Request)
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	UpdateSelection(w http.ResponseWriter, r *http.Request)
}

// DashboardRoutes are the endpoints that query the events API.
type DashboardRoutes interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetMap(w http.ResponseWriter, r *http.Request)
	ExportEvents(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	controlsHandler  ControlsRoutes
	dashboardHandler DashboardRoutes
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	controlsHandler ControlsRoutes,
	dashboardHandler DashboardRoutes,
	router *mux.Router) *Router {
	return &Router{
		controlsHandler:  controlsHandler,
		dashboardHandler: dashboardHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.controlsHandler.Ping).Methods("GET")

	r.router.HandleFunc("/v1/categories", r.controlsHandler.GetCategories).Methods("GET")
	// expects ?session_id={id}
	r.router.HandleFunc("/v1/locations", r.controlsHandler.GetLocations).Methods("GET")
	// accepts ?session_id={id}&location_id={id}
	r.router.HandleFunc("/v1/date-ranges", r.controlsHandler.GetDateRanges).Methods("GET")

	r.router.HandleFunc("/v1/sessions", r.controlsHandler.CreateSession).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}", r.controlsHandler.GetSession).Methods("GET")
	r.router.HandleFunc("/v1/sessions/{id}", r.controlsHandler.DeleteSession).Methods("DELETE")
	r.router.HandleFunc("/v1/sessions/{id}/selection", r.controlsHandler.UpdateSelection).Methods("PUT")

	r.router.HandleFunc("/v1/sessions/{id}/dashboard", r.dashboardHandler.GetDashboard).Methods("GET")
	r.router.HandleFunc("/v1/sessions/{id}/map", r.dashboardHandler.GetMap).Methods("GET")
	// accepts ?format=csv|xlsx|pdf
	r.router.HandleFunc("/v1/sessions/{id}/events/export", r.dashboardHandler.ExportEvents).Methods("GET")
}

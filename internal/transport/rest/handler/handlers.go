package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiamach/weather-station-dashboard/internal/logger"
	"github.com/katiamach/weather-station-dashboard/internal/model"
	"github.com/katiamach/weather-station-dashboard/internal/service"
	"github.com/katiamach/weather-station-dashboard/internal/view"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go DashboardService

// DashboardService provides dashboard state and selection methods.
type DashboardService interface {
	State() model.State
	SearchStations(query string) []model.Station
	NearestStation(lat, lon float64) (model.Station, error)
	LoadStations(ctx context.Context) error
	Select(id string) error
	Deselect()
}

var errStationsUnavailable = errors.New("failed to load stations from the weather service")

type stationsPage struct {
	Stations    []model.Station `json:"stations"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	RowsPerPage int             `json:"rowsPerPage"`
}

// DashboardServer serves the dashboard API and pages.
type DashboardServer struct {
	service DashboardService
}

// NewDashboardServer creates new DashboardServer.
func NewDashboardServer(service DashboardService) *DashboardServer {
	return &DashboardServer{service}
}

// RegisterRoutes mounts the dashboard routes on r.
func (s *DashboardServer) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", s.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stations", s.GetStationsHandler).Methods(http.MethodGet)
	api.HandleFunc("/stations/nearest", s.GetNearestStationHandler).Methods(http.MethodGet)
	api.HandleFunc("/stations/refresh", s.RefreshStationsHandler).Methods(http.MethodPost)
	api.HandleFunc("/selection/{id}", s.SelectStationHandler).Methods(http.MethodPut)
	api.HandleFunc("/selection", s.DeselectHandler).Methods(http.MethodDelete)
	api.HandleFunc("/state", s.GetStateHandler).Methods(http.MethodGet)

	r.HandleFunc("/", s.IndexHandler).Methods(http.MethodGet)
	r.HandleFunc("/select/{id}", s.SelectFormHandler).Methods(http.MethodPost)
	r.HandleFunc("/back", s.BackFormHandler).Methods(http.MethodPost)
}

// HealthHandler reports liveness.
func (s *DashboardServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStationsHandler handles station search with pagination.
func (s *DashboardServer) GetStationsHandler(w http.ResponseWriter, r *http.Request) {
	q := view.ParseListQuery(r.URL.Query())

	matches := s.service.SearchStations(q.Search)
	win := view.Paginate(len(matches), q.Page, q.RowsPerPage)

	respond(w, http.StatusOK, stationsPage{
		Stations:    matches[win.Start:win.End],
		Total:       win.Total,
		Page:        win.Page,
		RowsPerPage: win.RowsPerPage,
	})
}

// GetNearestStationHandler handles nearest station lookup.
func (s *DashboardServer) GetNearestStationHandler(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := validateCoordinates(r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	station, err := s.service.NearestStation(lat, lon)
	if errors.Is(err, service.ErrEmptyDirectory) {
		respondErr(w, http.StatusNotFound, service.ErrEmptyDirectory)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to find nearest station: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, station)
}

// RefreshStationsHandler reloads the station directory.
func (s *DashboardServer) RefreshStationsHandler(w http.ResponseWriter, r *http.Request) {
	err := s.service.LoadStations(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("failed to refresh stations: %v", err))
		respondErr(w, http.StatusBadGateway, errStationsUnavailable)
		return
	}

	s.respondState(w, http.StatusOK)
}

// SelectStationHandler handles station selection.
func (s *DashboardServer) SelectStationHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := s.service.Select(id)
	if errors.Is(err, service.ErrUnresolvedStation) {
		logger.Info(err.Error())
		s.respondState(w, http.StatusAccepted)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to select station: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	s.respondState(w, http.StatusOK)
}

// DeselectHandler clears the selection.
func (s *DashboardServer) DeselectHandler(w http.ResponseWriter, r *http.Request) {
	s.service.Deselect()
	s.respondState(w, http.StatusOK)
}

// GetStateHandler returns the current dashboard state.
func (s *DashboardServer) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, http.StatusOK)
}

func (s *DashboardServer) respondState(w http.ResponseWriter, code int) {
	state := s.service.State()
	state.View = view.Route(state)

	respond(w, code, state)
}

// IndexHandler renders the list or detail page.
func (s *DashboardServer) IndexHandler(w http.ResponseWriter, r *http.Request) {
	q := view.ParseListQuery(r.URL.Query())

	state := s.service.State()
	state.View = view.Route(state)

	var matches []model.Station
	if state.View == model.PageList {
		matches = s.service.SearchStations(q.Search)
	}

	var buf bytes.Buffer
	if err := view.Render(&buf, state, matches, q); err != nil {
		logger.Error(fmt.Errorf("failed to render page: %v", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("failed to write page: %v", err))
	}
}

// SelectFormHandler selects a station from the list page.
func (s *DashboardServer) SelectFormHandler(w http.ResponseWriter, r *http.Request) {
	err := s.service.Select(mux.Vars(r)["id"])
	if err != nil && !errors.Is(err, service.ErrUnresolvedStation) {
		logger.Error(fmt.Errorf("failed to select station: %v", err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// BackFormHandler returns from the detail page to the list.
func (s *DashboardServer) BackFormHandler(w http.ResponseWriter, r *http.Request) {
	s.service.Deselect()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func validateCoordinates(params url.Values) (float64, float64, error) {
	latStr := params.Get("lat")
	if latStr == "" {
		return 0, 0, errors.New("lat parameter not provided in query")
	}

	lonStr := params.Get("lon")
	if lonStr == "" {
		return 0, 0, errors.New("lon parameter not provided in query")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lat parameter is not a number: %w", err)
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lon parameter is not a number: %w", err)
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.New("coordinates are out of range")
	}

	return lat, lon, nil
}

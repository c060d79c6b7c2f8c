// Package service holds the station directory and the selection controller
// that drives observation fetches for the dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/katiamach/weather-station-dashboard/internal/logger"
	"github.com/katiamach/weather-station-dashboard/internal/model"
	"github.com/katiamach/weather-station-dashboard/internal/upstream"
)

// User facing messages.
const (
	MsgStationsUnavailable = "Error loading stations"
	MsgNoWeatherData       = "No weather data available for this station"
	MsgInvalidWeatherData  = "Invalid weather data format"
	MsgWeatherUnavailable  = "Error loading weather data"
)

// ErrUnresolvedStation is returned by Select when the id is not in the current directory.
// The selection is kept and fetched once a directory containing it is loaded.
var ErrUnresolvedStation = errors.New("station is not in the directory")

// StationFetcher retrieves the station directory.
type StationFetcher interface {
	FetchStations(ctx context.Context) ([]model.Station, error)
}

// ObservationFetcher retrieves the weather snapshot of a station.
type ObservationFetcher interface {
	FetchObservation(ctx context.Context, station model.Station) (*model.WeatherSnapshot, error)
}

// Controller owns the directory, the current selection and its weather snapshot.
type Controller struct {
	stations     StationFetcher
	observations ObservationFetcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	directory  *Directory
	dirErr     string
	selectedID string
	status     model.Status
	errMsg     string
	snapshot   *model.WeatherSnapshot

	// generation identifies the live selection; fetch results carrying
	// an older generation are dropped.
	generation  uint64
	cancelFetch context.CancelFunc
}

// New creates new Controller.
func New(stations StationFetcher, observations ObservationFetcher) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		stations:     stations,
		observations: observations,
		ctx:          ctx,
		cancel:       cancel,
		status:       model.StatusIdle,
	}
}

// LoadStations fetches the directory and installs it, replacing the previous one.
// On failure the previous directory stays in place.
func (c *Controller) LoadStations(ctx context.Context) error {
	stations, err := c.stations.FetchStations(ctx)
	if err != nil {
		c.mu.Lock()
		c.dirErr = MsgStationsUnavailable
		c.mu.Unlock()

		return fmt.Errorf("failed to fetch stations: %w", err)
	}

	dir := NewDirectory(stations)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.directory = dir
	c.dirErr = ""

	logger.WithFields(logger.Fields{"stations": dir.Len()}).Info("station directory loaded")

	// a selection made before the directory knew it is retried now
	if c.selectedID != "" && c.status == model.StatusIdle {
		if st, ok := dir.Lookup(c.selectedID); ok {
			c.startFetchLocked(st)
		}
	}

	return nil
}

// Select makes id the current selection. Any previous snapshot is dropped before
// the new fetch starts, and reselecting the same id fetches again.
// An empty id deselects.
func (c *Controller) Select(id string) error {
	if id == "" {
		c.Deselect()
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.selectedID = id

	st, ok := c.directory.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnresolvedStation, id)
	}

	c.startFetchLocked(st)
	return nil
}

// Deselect clears the selection and its snapshot.
func (c *Controller) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.selectedID = ""
}

// resetLocked invalidates the outstanding fetch and returns to Idle.
func (c *Controller) resetLocked() {
	c.generation++
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}

	c.status = model.StatusIdle
	c.snapshot = nil
	c.errMsg = ""
}

func (c *Controller) startFetchLocked(st model.Station) {
	c.status = model.StatusLoading
	c.snapshot = nil
	c.errMsg = ""

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel
	gen := c.generation

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		snapshot, err := c.observations.FetchObservation(ctx, st)
		c.complete(gen, st, snapshot, err)
	}()
}

func (c *Controller) complete(gen uint64, st model.Station, snapshot *model.WeatherSnapshot, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		logger.WithFields(logger.Fields{"station": st.ID}).Debug("discarding stale observation")
		return
	}
	c.cancelFetch = nil

	if err != nil {
		logger.WithFields(logger.Fields{"station": st.ID, "error": err.Error()}).Warn("failed to fetch observation")

		c.status = model.StatusError
		c.errMsg = errorMessage(err)
		c.snapshot = nil
		return
	}

	c.status = model.StatusReady
	c.snapshot = snapshot
}

// errorMessage converts a fetch error into the message shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		return MsgNoWeatherData
	case errors.Is(err, upstream.ErrDecode):
		return MsgInvalidWeatherData
	default:
		return MsgWeatherUnavailable
	}
}

// State returns a copy of the published state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snapshot *model.WeatherSnapshot
	if c.snapshot != nil {
		s := *c.snapshot
		snapshot = &s
	}

	return model.State{
		Stations:          c.directory.Stations(),
		SelectedStationID: c.selectedID,
		Status:            c.status,
		ErrorMessage:      c.errMsg,
		WeatherSnapshot:   snapshot,
		DirectoryError:    c.dirErr,
	}
}

// SearchStations returns the stations matching query by name or id.
func (c *Controller) SearchStations(query string) []model.Station {
	return c.currentDirectory().Search(query)
}

// NearestStation returns the station closest to the coordinates.
func (c *Controller) NearestStation(lat, lon float64) (model.Station, error) {
	return c.currentDirectory().Nearest(lat, lon)
}

func (c *Controller) currentDirectory() *Directory {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.directory
}

// Wait blocks until all started fetches have completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding fetches and waits for them.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

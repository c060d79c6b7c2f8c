// Package model contains the dashboard domain types shared between packages.
package model

import (
	"fmt"
	"strings"
)

// Station is a weather station as listed by the upstream directory.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Forecast is a rainfall forecast for one day.
type Forecast struct {
	Date     string   `json:"date"`
	Rainfall *float64 `json:"rainfall,omitempty"`
}

// WeatherSnapshot is the normalized observation and forecast bundle of one station.
// Absent readings are nil.
type WeatherSnapshot struct {
	Timestamp string `json:"timestamp"`

	Temperature    *float64 `json:"temperature,omitempty"`
	Humidity       *float64 `json:"humidity,omitempty"`
	Rainfall       *float64 `json:"rainfall,omitempty"`
	WindSpeed      *float64 `json:"windSpeed,omitempty"`
	WindDirection  *float64 `json:"windDirection,omitempty"`
	AirPressure    *float64 `json:"airPressure,omitempty"`
	SolarRadiation *float64 `json:"solarRadiation,omitempty"`
	WindGust       *float64 `json:"windGust,omitempty"`

	Altitude                 *float64 `json:"altitude,omitempty"`
	InstallationHeight       *float64 `json:"installationHeight,omitempty"`
	Timezone                 string   `json:"timezone,omitempty"`
	Status                   *int     `json:"status,omitempty"`
	Code                     string   `json:"code,omitempty"`
	StationLocalReportedTime string   `json:"stationLocalReportedTime,omitempty"`
	UTCReportedTime          string   `json:"utcReportedTime,omitempty"`

	Forecasts []Forecast `json:"forecasts,omitempty"`
}

// Online reports whether the station reported itself as active.
func (s *WeatherSnapshot) Online() bool {
	return s != nil && s.Status != nil && *s.Status == 1
}

// Status is the request lifecycle of the current selection.
type Status int

// Selection statuses.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusReady:   "ready",
	StatusError:   "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for st, name := range statusNames {
		if strings.EqualFold(name, string(text)) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Page is the presentation state derived from a selection.
type Page string

// Pages of the dashboard.
const (
	PageList   Page = "list"
	PageDetail Page = "detail"
)

// State is what the controller publishes to the presentation layer.
type State struct {
	Stations          []Station        `json:"stations"`
	SelectedStationID string           `json:"selectedStationId,omitempty"`
	Status            Status           `json:"status"`
	ErrorMessage      string           `json:"errorMessage,omitempty"`
	WeatherSnapshot   *WeatherSnapshot `json:"weatherSnapshot,omitempty"`
	DirectoryError    string           `json:"directoryError,omitempty"`
	View              Page             `json:"view"`
}

// SelectedStation resolves the selected id against the published stations.
func (s State) SelectedStation() (Station, bool) {
	if s.SelectedStationID == "" {
		return Station{}, false
	}
	for _, st := range s.Stations {
		if st.ID == s.SelectedStationID {
			return st, true
		}
	}
	return Station{}, false
}

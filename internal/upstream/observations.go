package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/katiamach/weather-station-dashboard/internal/model"
)

const (
	observationsPath = "/data"
	successStatus    = "success"

	// stationKeySeparator joins id and name in the station query parameter.
	stationKeySeparator = " | "
)

type observationEnvelope struct {
	Status string `json:"status"`
	Data   *struct {
		Observations *rawObservation     `json:"observations"`
		Forecasts    [][]json.RawMessage `json:"forecasts"`
	} `json:"data"`
}

type rawObservation struct {
	Values                   map[string]json.RawMessage `json:"values"`
	LastReport               string                     `json:"last_report"`
	Altitude                 json.RawMessage            `json:"altitude"`
	InstallationHeight       json.RawMessage            `json:"installation_height"`
	Timezone                 string                     `json:"timezone"`
	Status                   json.RawMessage            `json:"status"`
	Code                     string                     `json:"code"`
	StationLocalReportedTime string                     `json:"station_local_reported_time"`
	UTCReportedTime          string                     `json:"utc_reported_time"`
}

// FetchObservation retrieves the current observation and forecast of the station.
func (c *Client) FetchObservation(ctx context.Context, station model.Station) (*model.WeatherSnapshot, error) {
	if station.ID == "" || station.Name == "" {
		return nil, fmt.Errorf("%w: station id and name are required", ErrUnresolvedStation)
	}

	resp, err := c.get(ctx, observationsPath, "station="+StationKey(station))
	if err != nil {
		return nil, err
	}
	defer discard(resp)

	if err := classifyObservationStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var env observationEnvelope
	if err := decodeJSON(resp, &env); err != nil {
		return nil, err
	}

	return normalizeObservation(&env)
}

// StationKey builds the encoded station query value: "<id> | <name>".
func StationKey(station model.Station) string {
	return encodeComponent(station.ID + stationKeySeparator + station.Name)
}

// encodeComponent percent-encodes s as a single query component, spaces included.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// classifyObservationStatus maps the response status code to an error.
// The service answers 500 when it has no data for a station.
func classifyObservationStatus(code int) error {
	switch {
	case statusOK(code):
		return nil
	case code == http.StatusInternalServerError, code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: observation request returned status %d", ErrServer, code)
	}
}

func normalizeObservation(env *observationEnvelope) (*model.WeatherSnapshot, error) {
	if env.Status != successStatus || env.Data == nil || env.Data.Observations == nil {
		return nil, ErrDecode
	}

	obs := env.Data.Observations
	v := obs.Values

	snapshot := &model.WeatherSnapshot{
		Timestamp:      obs.LastReport,
		Temperature:    optionalNumber(v["te"]),
		Humidity:       scaled(optionalNumber(v["rh"]), 100),
		Rainfall:       optionalNumber(v["pr"]),
		WindSpeed:      optionalNumber(v["ws"]),
		WindDirection:  optionalNumber(v["wd"]),
		AirPressure:    optionalNumber(v["ap"]),
		SolarRadiation: optionalNumber(v["ra"]),
		WindGust:       optionalNumber(v["wg"]),

		Altitude:                 optionalNumber(obs.Altitude),
		InstallationHeight:       optionalNumber(obs.InstallationHeight),
		Timezone:                 obs.Timezone,
		Status:                   optionalInt(obs.Status),
		Code:                     obs.Code,
		StationLocalReportedTime: obs.StationLocalReportedTime,
		UTCReportedTime:          obs.UTCReportedTime,
	}

	if len(env.Data.Forecasts) > 0 {
		snapshot.Forecasts = make([]model.Forecast, 0, len(env.Data.Forecasts))
	}
	for i, rec := range env.Data.Forecasts {
		f, err := parseForecast(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: forecast %d: %v", ErrDecode, i, err)
		}

		snapshot.Forecasts = append(snapshot.Forecasts, f)
	}

	return snapshot, nil
}

// parseForecast maps a positional [date, rainfall] pair.
func parseForecast(rec []json.RawMessage) (model.Forecast, error) {
	if len(rec) < 2 {
		return model.Forecast{}, fmt.Errorf("expected 2 fields, got %d", len(rec))
	}

	var date string
	if err := json.Unmarshal(rec[0], &date); err != nil {
		return model.Forecast{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return model.Forecast{Date: date, Rainfall: optionalNumber(rec[1])}, nil
}

// optionalNumber returns nil for missing, null, empty, non-numeric and non-finite values.
// Numeric strings are accepted.
func optionalNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}

		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return &f
}

func optionalInt(raw json.RawMessage) *int {
	f := optionalNumber(raw)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}

	i := int(*f)
	return &i
}

func scaled(f *float64, factor float64) *float64 {
	if f == nil {
		return nil
	}

	v := *f * factor
	return &v
}

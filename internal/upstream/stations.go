package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/katiamach/weather-station-dashboard/internal/model"
)

const stationsPath = "/get-stations"

// FetchStations retrieves the full station list.
// The upstream returns positional records: [id, name, latitude, longitude].
func (c *Client) FetchStations(ctx context.Context) ([]model.Station, error) {
	resp, err := c.get(ctx, stationsPath, "")
	if err != nil {
		return nil, err
	}
	defer discard(resp)

	if !statusOK(resp.StatusCode) {
		return nil, fmt.Errorf("%w: stations request returned status %d", ErrServer, resp.StatusCode)
	}

	var records [][]json.RawMessage
	if err := decodeJSON(resp, &records); err != nil {
		return nil, err
	}

	stations := make([]model.Station, 0, len(records))
	for i, rec := range records {
		st, err := parseStation(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: station record %d: %v", ErrDecode, i, err)
		}

		stations = append(stations, st)
	}

	return stations, nil
}

// parseStation maps a positional record into a Station. Extra positions are ignored.
func parseStation(rec []json.RawMessage) (model.Station, error) {
	if len(rec) < 4 {
		return model.Station{}, fmt.Errorf("expected 4 fields, got %d", len(rec))
	}

	var st model.Station

	if err := json.Unmarshal(rec[0], &st.ID); err != nil {
		return model.Station{}, fmt.Errorf("failed to parse id: %w", err)
	}
	if err := json.Unmarshal(rec[1], &st.Name); err != nil {
		return model.Station{}, fmt.Errorf("failed to parse name: %w", err)
	}
	if err := json.Unmarshal(rec[2], &st.Latitude); err != nil {
		return model.Station{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	if err := json.Unmarshal(rec[3], &st.Longitude); err != nil {
		return model.Station{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return st, nil
}

// statusOK reports whether code is a 2xx status.
func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

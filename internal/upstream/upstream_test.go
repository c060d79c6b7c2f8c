package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/katiamach/weather-station-dashboard/internal/model"
	"github.com/tj/assert"
	"golang.org/x/text/encoding/charmap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", srv.Client())
}

func float(v float64) *float64 {
	return &v
}

func TestFetchStations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-stations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[["TA00001","Lela Primary School",-1.1232833,34.3979917],["TA00004","Manso Amenfi NVTI",5.7,-1.9]]`))
	})

	stations, err := c.FetchStations(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []model.Station{
		{ID: "TA00001", Name: "Lela Primary School", Latitude: -1.1232833, Longitude: 34.3979917},
		{ID: "TA00004", Name: "Manso Amenfi NVTI", Latitude: 5.7, Longitude: -1.9},
	}, stations)
}

func TestFetchStationsOutOfRangeCoordinatesPassThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[["X","Nowhere",123.5,-999]]`))
	})

	stations, err := c.FetchStations(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 123.5, stations[0].Latitude)
	assert.Equal(t, -999.0, stations[0].Longitude)
}

func TestFetchStationsLatin1(t *testing.T) {
	body, err := charmap.ISO8859_1.NewEncoder().String(`[["DE01","Münster",51.9,7.6]]`)
	assert.Nil(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")
		_, _ = w.Write([]byte(body))
	})

	stations, err := c.FetchStations(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "Münster", stations[0].Name)
}

func TestFetchStationsErrors(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		expectedErr error
	}{
		{name: "short record", status: http.StatusOK, body: `[["TA00001","Lela",1.0]]`, expectedErr: ErrDecode},
		{name: "wrong type", status: http.StatusOK, body: `[["TA00001","Lela","north",1.0]]`, expectedErr: ErrDecode},
		{name: "not an array", status: http.StatusOK, body: `{"stations":[]}`, expectedErr: ErrDecode},
		{name: "server error", status: http.StatusBadGateway, body: ``, expectedErr: ErrServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.FetchStations(context.Background())
			assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
		})
	}
}

func TestFetchStationsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).FetchStations(context.Background())
	assert.True(t, errors.Is(err, ErrNetwork), "got %v", err)
}

func TestStationKey(t *testing.T) {
	key := StationKey(model.Station{ID: "TA00004", Name: "Manso Amenfi NVTI"})
	assert.Equal(t, "TA00004%20%7C%20Manso%20Amenfi%20NVTI", key)
}

func TestFetchObservation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data", r.URL.Path)
		assert.Equal(t, "station=TA00004%20%7C%20Manso%20Amenfi%20NVTI", r.URL.RawQuery)
		assert.Equal(t, "TA00004 | Manso Amenfi NVTI", r.URL.Query().Get("station"))

		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"observations": {
					"status": 1,
					"name": "Manso Amenfi NVTI",
					"altitude": 152.5,
					"installation_height": 2,
					"timezone": "Africa/Accra",
					"values": {"rh": 0.42, "te": 21.5, "pr": 0, "ws": 3.1, "wd": 270, "ap": 1004.2, "ra": 512, "wg": ""},
					"last_report": "2024-01-01T00:00:00Z",
					"code": "TA00004",
					"station_local_reported_time": "2024-01-01 00:00",
					"utc_reported_time": "2024-01-01T00:00:00Z"
				},
				"forecasts": [["2024-01-02", 3.2], ["2024-01-03", null]]
			}
		}`))
	})

	snapshot, err := c.FetchObservation(context.Background(), model.Station{ID: "TA00004", Name: "Manso Amenfi NVTI"})
	assert.Nil(t, err)

	status := 1
	assert.Equal(t, &model.WeatherSnapshot{
		Timestamp:                "2024-01-01T00:00:00Z",
		Temperature:              float(21.5),
		Humidity:                 float(42),
		Rainfall:                 float(0),
		WindSpeed:                float(3.1),
		WindDirection:            float(270),
		AirPressure:              float(1004.2),
		SolarRadiation:           float(512),
		Altitude:                 float(152.5),
		InstallationHeight:       float(2),
		Timezone:                 "Africa/Accra",
		Status:                   &status,
		Code:                     "TA00004",
		StationLocalReportedTime: "2024-01-01 00:00",
		UTCReportedTime:          "2024-01-01T00:00:00Z",
		Forecasts: []model.Forecast{
			{Date: "2024-01-02", Rainfall: float(3.2)},
			{Date: "2024-01-03"},
		},
	}, snapshot)
	assert.Nil(t, snapshot.WindGust)
	assert.True(t, snapshot.Online())
}

func TestFetchObservationErrors(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		expectedErr error
	}{
		{name: "500 means no data", status: http.StatusInternalServerError, expectedErr: ErrNotFound},
		{name: "404", status: http.StatusNotFound, expectedErr: ErrNotFound},
		{name: "bad gateway", status: http.StatusBadGateway, expectedErr: ErrServer},
		{name: "status not success", status: http.StatusOK, body: `{"status":"error","data":{"observations":{}}}`, expectedErr: ErrDecode},
		{name: "missing observations", status: http.StatusOK, body: `{"status":"success","data":{"forecasts":[]}}`, expectedErr: ErrDecode},
		{name: "missing data", status: http.StatusOK, body: `{"status":"success"}`, expectedErr: ErrDecode},
		{name: "short forecast", status: http.StatusOK, body: `{"status":"success","data":{"observations":{},"forecasts":[["2024-01-02"]]}}`, expectedErr: ErrDecode},
		{name: "garbage", status: http.StatusOK, body: `<html>`, expectedErr: ErrDecode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.FetchObservation(context.Background(), model.Station{ID: "A", Name: "Alpha"})
			assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
		})
	}
}

func TestFetchObservationUnresolvedStation(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.FetchObservation(context.Background(), model.Station{ID: "A"})
	assert.True(t, errors.Is(err, ErrUnresolvedStation))
	assert.False(t, called)
}

func TestOptionalNumber(t *testing.T) {
	cases := []struct {
		raw      string
		expected *float64
	}{
		{raw: `1.5`, expected: float(1.5)},
		{raw: `"2.25"`, expected: float(2.25)},
		{raw: `""`},
		{raw: `null`},
		{raw: ``},
		{raw: `"NaN"`},
		{raw: `"Inf"`},
		{raw: `true`},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, optionalNumber([]byte(tc.raw)))
		})
	}
}

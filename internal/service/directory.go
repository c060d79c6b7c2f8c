package service

import (
	"errors"
	"strings"

	"github.com/umahmood/haversine"
	"golang.org/x/text/cases"

	"github.com/katiamach/weather-station-dashboard/internal/model"
)

// ErrEmptyDirectory is returned when no stations are loaded.
var ErrEmptyDirectory = errors.New("there are no stations yet")

// Directory is an immutable snapshot of the known stations.
type Directory struct {
	stations []model.Station
	byID     map[string]int
	folded   []string
}

// NewDirectory builds a directory snapshot. If ids repeat, lookup resolves to the first one.
func NewDirectory(stations []model.Station) *Directory {
	d := &Directory{
		stations: make([]model.Station, len(stations)),
		byID:     make(map[string]int, len(stations)),
		folded:   make([]string, len(stations)),
	}
	copy(d.stations, stations)

	fold := cases.Fold()
	for i, st := range d.stations {
		if _, ok := d.byID[st.ID]; !ok {
			d.byID[st.ID] = i
		}
		d.folded[i] = fold.String(st.Name) + "\x00" + fold.String(st.ID)
	}

	return d
}

// Len returns the number of stations.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.stations)
}

// Lookup resolves a station by id.
func (d *Directory) Lookup(id string) (model.Station, bool) {
	if d == nil {
		return model.Station{}, false
	}

	i, ok := d.byID[id]
	if !ok {
		return model.Station{}, false
	}
	return d.stations[i], true
}

// Stations returns a copy of all stations in upstream order.
func (d *Directory) Stations() []model.Station {
	if d == nil {
		return []model.Station{}
	}

	res := make([]model.Station, len(d.stations))
	copy(res, d.stations)
	return res
}

// Search returns stations whose name or id contains query, ignoring case.
func (d *Directory) Search(query string) []model.Station {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.Stations()
	}
	if d == nil {
		return []model.Station{}
	}

	q := cases.Fold().String(query)

	res := make([]model.Station, 0)
	for i, key := range d.folded {
		name, id, _ := strings.Cut(key, "\x00")
		if strings.Contains(name, q) || strings.Contains(id, q) {
			res = append(res, d.stations[i])
		}
	}

	return res
}

// Nearest finds the station closest to the given coordinates.
func (d *Directory) Nearest(lat, lon float64) (model.Station, error) {
	if d.Len() == 0 {
		return model.Station{}, ErrEmptyDirectory
	}

	point := haversine.Coord{Lat: lat, Lon: lon}

	var minDistance float64
	minIndex := 0

	for i, st := range d.stations {
		_, km := haversine.Distance(point, haversine.Coord{Lat: st.Latitude, Lon: st.Longitude})
		if i == 0 || km < minDistance {
			minDistance = km
			minIndex = i
		}
	}

	return d.stations[minIndex], nil
}

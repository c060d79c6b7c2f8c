// Package view switches between the station list and the station detail page
// and renders them as HTML.
package view

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/katiamach/weather-station-dashboard/internal/model"
)

// Pagination settings of the station list.
const DefaultRowsPerPage = 10

// RowsPerPageOptions are the page sizes offered by the list page.
var RowsPerPageOptions = []int{5, 10, 25, 50}

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"reading": formatReading,
	"inc":     func(i int) int { return i + 1 },
	"dec":     func(i int) int { return i - 1 },
}).ParseFS(templatesFS, "templates/*.html"))

// Route decides which page represents the state.
func Route(state model.State) model.Page {
	if state.SelectedStationID == "" {
		return model.PageList
	}
	return model.PageDetail
}

// ListQuery holds the list page search and pagination parameters.
type ListQuery struct {
	Search      string
	Page        int
	RowsPerPage int
}

// ParseListQuery reads list parameters, falling back to defaults for invalid values.
func ParseListQuery(params url.Values) ListQuery {
	q := ListQuery{
		Search:      params.Get("search"),
		RowsPerPage: DefaultRowsPerPage,
	}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page > 0 {
		q.Page = page
	}

	if rows, err := strconv.Atoi(params.Get("rowsPerPage")); err == nil && validRowsPerPage(rows) {
		q.RowsPerPage = rows
	}

	return q
}

func validRowsPerPage(rows int) bool {
	for _, opt := range RowsPerPageOptions {
		if rows == opt {
			return true
		}
	}
	return false
}

// Window is one page of a list of total items.
type Window struct {
	Page        int
	RowsPerPage int
	Total       int
	Start       int
	End         int
	LastPage    int
}

// Paginate clamps page into range and computes the item window [Start, End).
func Paginate(total, page, rowsPerPage int) Window {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}

	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / rowsPerPage
	}
	if page > lastPage {
		page = lastPage
	}
	if page < 0 {
		page = 0
	}

	start := page * rowsPerPage
	end := start + rowsPerPage
	if end > total {
		end = total
	}

	return Window{
		Page:        page,
		RowsPerPage: rowsPerPage,
		Total:       total,
		Start:       start,
		End:         end,
		LastPage:    lastPage,
	}
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Page > 0 }

// HasNext reports whether a next page exists.
func (w Window) HasNext() bool { return w.Page < w.LastPage }

// FirstShown is the 1-based index of the first item shown, 0 when empty.
func (w Window) FirstShown() int {
	if w.Total == 0 {
		return 0
	}
	return w.Start + 1
}

type listData struct {
	Query          ListQuery
	Window         Window
	Stations       []model.Station
	TotalStations  int
	DirectoryError string
	Options        []int
}

type detailData struct {
	Station  model.Station
	Resolved bool
	Loading  bool
	Error    string
	Snapshot *model.WeatherSnapshot
}

// Render writes the page chosen by Route. matches are the stations found by the list search.
func Render(w io.Writer, state model.State, matches []model.Station, q ListQuery) error {
	if Route(state) == model.PageDetail {
		return pages.ExecuteTemplate(w, "detail.html", newDetailData(state))
	}

	return pages.ExecuteTemplate(w, "list.html", newListData(state, matches, q))
}

func newListData(state model.State, matches []model.Station, q ListQuery) listData {
	win := Paginate(len(matches), q.Page, q.RowsPerPage)
	q.Page = win.Page

	return listData{
		Query:          q,
		Window:         win,
		Stations:       matches[win.Start:win.End],
		TotalStations:  len(state.Stations),
		DirectoryError: state.DirectoryError,
		Options:        RowsPerPageOptions,
	}
}

func newDetailData(state model.State) detailData {
	st, ok := state.SelectedStation()

	return detailData{
		Station:  st,
		Resolved: ok,
		Loading:  state.Status == model.StatusLoading,
		Error:    state.ErrorMessage,
		Snapshot: state.WeatherSnapshot,
	}
}

func formatReading(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

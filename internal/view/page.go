package view

import (
	"time"

	"github.com/couchcryptid/user-locations/internal/domain"
)

// ColumnCount is the number of display columns in the locations table.
const ColumnCount = 9

// EmptyMessage is shown in place of data rows when nothing matches.
const EmptyMessage = "No results found"

// SearchPlaceholder is the hint shown in the empty search box.
const SearchPlaceholder = "Search by city or state..."

// Header is one table header cell. Sortable headers carry the field they sort by.
type Header struct {
	Label     string       `json:"label"`
	Field     domain.Field `json:"field,omitempty"`
	Sortable  bool         `json:"sortable"`
	Indicator string       `json:"indicator,omitempty"`
}

// Row is one displayed record. Street joins the street number and name.
type Row struct {
	City                string `json:"city"`
	State               string `json:"state"`
	Country             string `json:"country"`
	Postcode            string `json:"postcode"`
	Street              string `json:"street"`
	Latitude            string `json:"latitude"`
	Longitude           string `json:"longitude"`
	TimezoneOffset      string `json:"timezone_offset"`
	TimezoneDescription string `json:"timezone_description"`
}

// Cells returns the row's values in column order.
func (r Row) Cells() []string {
	return []string{
		r.City,
		r.State,
		r.Country,
		r.Postcode,
		r.Street,
		r.Latitude,
		r.Longitude,
		r.TimezoneOffset,
		r.TimezoneDescription,
	}
}

// Page is everything needed to render the view once.
type Page struct {
	BatchID   string            `json:"batch_id,omitempty"`
	FetchedAt time.Time         `json:"fetched_at,omitzero"`
	Query     string            `json:"query"`
	Sort      domain.SortConfig `json:"sort"`
	Headers   []Header          `json:"headers"`
	Rows      []Row             `json:"rows"`
	Total     int               `json:"total"`
}

// Empty reports whether the filtered view has no rows.
func (p Page) Empty() bool { return len(p.Rows) == 0 }

type column struct {
	label string
	field domain.Field // sortable when set
}

var columns = [ColumnCount]column{
	{label: "City", field: domain.FieldCity},
	{label: "State", field: domain.FieldState},
	{label: "Country"},
	{label: "Postcode"},
	{label: "Street"},
	{label: "Latitude"},
	{label: "Longitude"},
	{label: "Timezone Offset"},
	{label: "Timezone Description"},
}

// Derive computes the page for a state: the current record order filtered by the query.
func Derive(s State) Page {
	headers := make([]Header, 0, ColumnCount)
	for _, c := range columns {
		h := Header{Label: c.label}
		if c.field != "" {
			h.Field = c.field
			h.Sortable = true
			h.Indicator = s.Sort.Indicator(c.field)
		}
		headers = append(headers, h)
	}

	visible := domain.Filter(s.Records, s.Query)
	rows := make([]Row, 0, len(visible))
	for _, r := range visible {
		rows = append(rows, rowFor(r.Location))
	}

	return Page{
		BatchID:   s.Batch.ID,
		FetchedAt: s.Batch.FetchedAt,
		Query:     s.Query,
		Sort:      s.Sort,
		Headers:   headers,
		Rows:      rows,
		Total:     len(s.Records),
	}
}

func rowFor(l domain.Location) Row {
	return Row{
		City:                l.City.String(),
		State:               l.State.String(),
		Country:             l.Country.String(),
		Postcode:            l.Postcode.String(),
		Street:              l.StreetNumber.String() + " " + l.StreetName.String(),
		Latitude:            l.Latitude.String(),
		Longitude:           l.Longitude.String(),
		TimezoneOffset:      l.TimezoneOffset.String(),
		TimezoneDescription: l.TimezoneDescription.String(),
	}
}

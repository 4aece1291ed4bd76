package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SpendTotalParams are the filters of the aggregate spend query. Radius is a
// bare number in the location's native unit.
type SpendTotalParams struct {
	Lat        float64
	Lon        float64
	Radius     float64
	DateFrom   string
	DateTo     string
	Categories []string
	TZ         string
}

func (p SpendTotalParams) ToValues() url.Values {
	q := url.Values{}
	q.Set("lat", ftoa(p.Lat))
	q.Set("lon", ftoa(p.Lon))
	q.Set("radius", ftoa(p.Radius))
	q.Set("date_from", p.DateFrom)
	q.Set("date_to", p.DateTo)
	if len(p.Categories) > 0 {
		q.Set("category", strings.Join(p.Categories, ","))
	}
	if p.TZ != "" {
		q.Set("tz", p.TZ)
	}
	return q
}

// EventSearchParams are the filters of the detailed event list query.
type EventSearchParams struct {
	Lat        float64
	Lon        float64
	Radius     float64
	RadiusUnit RadiusUnit
	DateFrom   string
	DateTo     string
	Categories []string
	TZ         string
	Limit      int    // optional
	Sort       string // optional, e.g. "start"
}

// Within renders the geographic filter, e.g. "2.5mi@40.7,-74.0".
func (p EventSearchParams) Within() string {
	return fmt.Sprintf("%s%s@%s,%s", ftoa(p.Radius), p.RadiusUnit, ftoa(p.Lat), ftoa(p.Lon))
}

func (p EventSearchParams) ToValues() url.Values {
	q := url.Values{}
	q.Set("within", p.Within())
	q.Set("active.gte", p.DateFrom)
	q.Set("active.lte", p.DateTo)
	if p.TZ != "" {
		q.Set("active.tz", p.TZ)
	}
	if len(p.Categories) > 0 {
		q.Set("category", strings.Join(p.Categories, ","))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

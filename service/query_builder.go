package services

import "es-server/models"

const EVENTS_SORT = "start"

// QuerySet holds both queries of a dashboard pass.
type QuerySet struct {
	SpendTotal models.SpendTotalParams
	Events     models.EventSearchParams
}

// QueryBuilder turns a resolved selection into API parameters.
type QueryBuilder struct {
	eventLimit int
}

func NewQueryBuilder(eventLimit int) *QueryBuilder {
	return &QueryBuilder{eventLimit: eventLimit}
}

// BuildQueries returns false when any required selection field is missing.
func (qb *QueryBuilder) BuildQueries(sel models.Selection) (QuerySet, bool) {
	if sel.Location == nil || sel.DateRange == nil || sel.SuggestedRadius == nil || sel.Radius == nil {
		return QuerySet{}, false
	}

	loc := sel.Location
	categories := append([]string(nil), sel.Categories...)

	return QuerySet{
		SpendTotal: models.SpendTotalParams{
			Lat:        loc.Lat,
			Lon:        loc.Lon,
			Radius:     *sel.Radius,
			DateFrom:   sel.DateRange.DateFrom,
			DateTo:     sel.DateRange.DateTo,
			Categories: categories,
			TZ:         loc.TZ,
		},
		Events: models.EventSearchParams{
			Lat:        loc.Lat,
			Lon:        loc.Lon,
			Radius:     *sel.Radius,
			RadiusUnit: sel.SuggestedRadius.RadiusUnit,
			DateFrom:   sel.DateRange.DateFrom,
			DateTo:     sel.DateRange.DateTo,
			Categories: categories,
			TZ:         loc.TZ,
			Limit:      qb.eventLimit,
			Sort:       EVENTS_SORT,
		},
	}, true
}

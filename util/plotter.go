package util

import (
	"fmt"
	"io"
	"math"

	"es-server/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"
)

const earthRadiusMeters = 6371008.8

// radiusRingPoints is how many points approximate the radius circle.
const radiusRingPoints = 72

const (
	// The framed span is this many radii wide.
	RADIUS_FRAME_FACTOR = 4
	MAX_GEO_ZOOM        = 5000
)

// GeoZoom picks the geo zoom at which the world map shows a span of
// RADIUS_FRAME_FACTOR radii, clamped to [1, MAX_GEO_ZOOM].
func GeoZoom(radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return MAX_GEO_ZOOM
	}
	zoom := 2 * math.Pi * earthRadiusMeters / (RADIUS_FRAME_FACTOR * radiusMeters)
	return math.Max(1, math.Min(MAX_GEO_ZOOM, zoom))
}

// geoViewportJS centers the map on the location. GeoComponent has no
// center or zoom fields, so they are set on the instance after init.
func geoViewportJS(lat, lon, radiusMeters float64) types.FuncStr {
	return types.FuncStr(fmt.Sprintf(
		"%s.setOption({geo: {center: [%g, %g], zoom: %g, roam: true}});",
		render.EchartsInstancePlaceholder, lon, lat, GeoZoom(radiusMeters)))
}

// RadiusRing returns points lying radiusMeters away from the center, walking
// the full bearing circle. Values are [lon, lat] as the geo component expects.
func RadiusRing(lat, lon, radiusMeters float64, n int) []opts.GeoData {
	if n <= 0 {
		n = radiusRingPoints
	}
	phi1 := lat * math.Pi / 180
	lambda1 := lon * math.Pi / 180
	delta := radiusMeters / earthRadiusMeters

	points := make([]opts.GeoData, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
		lambda2 := lambda1 + math.Atan2(
			math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
			math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
		)
		points = append(points, opts.GeoData{
			Value: []float64{lambda2 * 180 / math.Pi, phi2 * 180 / math.Pi},
		})
	}
	return points
}

// EventPins returns one map point per event that carries coordinates.
func EventPins(events []models.EventRecord) []opts.GeoData {
	pins := make([]opts.GeoData, 0, len(events))
	for i := range events {
		lat, lon, ok := events[i].Point()
		if !ok {
			continue
		}
		pins = append(pins, opts.GeoData{Name: events[i].Title, Value: []float64{lon, lat}})
	}
	return pins
}

// NewEventMap builds the map: center marker, radius ring and event pins.
func NewEventMap(view models.DashboardView) *charts.Geo {
	loc := view.Location

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Event Map",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Location : " + loc.Address,
			Subtitle: fmt.Sprintf("%s to %s, radius %g%s", view.DateRange.DateFrom, view.DateRange.DateTo, view.Radius, view.RadiusUnit),
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	geo.AddJSFuncStrs(geoViewportJS(loc.Lat, loc.Lon, view.RadiusMeters))

	geo.AddSeries("Radius", types.ChartScatter, RadiusRing(loc.Lat, loc.Lon, view.RadiusMeters, radiusRingPoints),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#4a90d9"}),
	)
	geo.AddSeries("Events", types.ChartScatter, EventPins(view.Events),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#e4572e"}),
	)
	geo.AddSeries("Location", types.ChartEffectScatter,
		[]opts.GeoData{{Name: loc.Name, Value: []float64{loc.Lon, loc.Lat}}},
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	return geo
}

// NewSpendChart builds the per-industry spend bar chart.
func NewSpendChart(spend models.SpendMetrics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "320px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Total Predicted Event Spend : " + spend.TotalFormatted,
			Subtitle: fmt.Sprintf("Hospitality %s / Accommodation %s / Transportation %s", spend.HospitalityFormatted, spend.AccommodationFormatted, spend.TransportationFormatted),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"Hospitality", "Accommodation", "Transportation"}).
		AddSeries("Spend", []opts.BarData{
			{Name: "Hospitality", Value: spend.Hospitality},
			{Name: "Accommodation", Value: spend.Accommodation},
			{Name: "Transportation", Value: spend.Transportation},
		})
	return bar
}

// RenderDashboardPage writes the spend chart and the event map as one HTML page.
func RenderDashboardPage(w io.Writer, view models.DashboardView) error {
	page := components.NewPage()
	page.SetPageTitle("Events - " + view.Location.Name)
	page.AddCharts(NewSpendChart(view.Spend), NewEventMap(view))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return nil
}

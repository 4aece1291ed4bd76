package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayIn_UsesLocationCalendarDate(t *testing.T) {
	// 03:00 UTC on Jan 2 is still Jan 1 in New York.
	now := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	today, err := TodayIn("America/New_York", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", today.Format(DateLayout))

	today, err = TodayIn("Asia/Tokyo", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", today.Format(DateLayout))

	_, err = TodayIn("Not/AZone", now)
	assert.Error(t, err)
}

func TestDateRangeOptions(t *testing.T) {
	today := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	opts := DateRangeOptions(today)

	require.Len(t, opts, 3)
	assert.Equal(t, DateRange{ID: DateRangeNext7Days, Name: "Next 7 days", DateFrom: "2024-01-30", DateTo: "2024-02-06"}, opts[0])
	assert.Equal(t, "2024-02-29", opts[1].DateTo)
	assert.Equal(t, "2024-04-29", opts[2].DateTo)

	assert.Equal(t, DefaultDateRangeID, FindDateRange(opts, DateRangeNext90Days).ID)
	assert.Nil(t, FindDateRange(opts, "next_year"))
	assert.True(t, IsDateRangeID(DateRangeNext30Days))
	assert.False(t, IsDateRangeID("next_year"))
}

func TestNormalizeCategories(t *testing.T) {
	got, err := NormalizeCategories([]string{"sports", "concerts", "sports", "terror"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sports", "concerts", "terror"}, got)

	_, err = NormalizeCategories([]string{"sports", "knitting"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Equal(t, AttendedCategories, DefaultCategories())
	assert.Len(t, AllCategories(), len(AttendedCategories)+len(NonAttendedCategories)+len(UnscheduledCategories))
}

func TestCategoryVocabulariesAreDisjoint(t *testing.T) {
	seen := map[string]int{}
	for _, c := range AllCategories() {
		seen[c]++
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "category %s appears in more than one vocabulary", c)
	}
}

func TestParseRadiusUnit(t *testing.T) {
	for _, s := range []string{"mi", "ft", "km", "m"} {
		u, err := ParseRadiusUnit(s)
		require.NoError(t, err)
		assert.Equal(t, s, u.String())
	}
	u, err := ParseRadiusUnit("yd")
	assert.ErrorIs(t, err, ErrUnknownRadiusUnit)
	assert.Equal(t, RadiusUnit("yd"), u)
}

func TestSpendTotalParams_ToValues(t *testing.T) {
	q := SpendTotalParams{
		Lat: 40.7128, Lon: -74.006, Radius: 2.5,
		DateFrom: "2024-01-01", DateTo: "2024-01-31",
		Categories: []string{"concerts", "sports"},
		TZ:         "America/New_York",
	}.ToValues()

	assert.Equal(t, "40.7128", q.Get("lat"))
	assert.Equal(t, "-74.006", q.Get("lon"))
	assert.Equal(t, "2.5", q.Get("radius"))
	assert.Equal(t, "2024-01-01", q.Get("date_from"))
	assert.Equal(t, "2024-01-31", q.Get("date_to"))
	assert.Equal(t, "concerts,sports", q.Get("category"))
	assert.Equal(t, "America/New_York", q.Get("tz"))
}

func TestEventSearchParams_ToValues(t *testing.T) {
	q := EventSearchParams{
		Lat: 40.7128, Lon: -74.006, Radius: 2, RadiusUnit: RadiusUnitMiles,
		DateFrom: "2024-01-01", DateTo: "2024-01-31",
		Categories: []string{"concerts"},
		TZ:         "America/New_York",
		Limit:      50,
		Sort:       "start",
	}.ToValues()

	assert.Equal(t, "2mi@40.7128,-74.006", q.Get("within"))
	assert.Equal(t, "2024-01-01", q.Get("active.gte"))
	assert.Equal(t, "2024-01-31", q.Get("active.lte"))
	assert.Equal(t, "America/New_York", q.Get("active.tz"))
	assert.Equal(t, "concerts", q.Get("category"))
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "start", q.Get("sort"))
}

func TestEventRecord_UnmarshalAndPoint(t *testing.T) {
	raw := `{
		"id": "e1",
		"title": "Show",
		"category": "concerts",
		"start": "2024-01-01T00:00:00Z",
		"end": "2024-01-01T03:00:00Z",
		"timezone": null,
		"entities": [],
		"phq_attendance": null,
		"geo": {"geometry": {"type": "Point", "coordinates": [-74.0, 40.7]}}
	}`
	var e EventRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Nil(t, e.Timezone)
	assert.Nil(t, e.PHQAttendance)
	assert.Nil(t, e.PredictedEnd)
	assert.Nil(t, e.Geo.Placekey)

	lat, lon, ok := e.Point()
	assert.True(t, ok)
	assert.Equal(t, 40.7, lat)
	assert.Equal(t, -74.0, lon)

	e.Location = []float64{151.2, -33.8}
	lat, lon, _ = e.Point()
	assert.Equal(t, -33.8, lat)
	assert.Equal(t, 151.2, lon)
}

func TestEventsResponse_AreaGeometryDoesNotFailDecoding(t *testing.T) {
	raw := `{"results": [
		{"id": "a", "title": "Gig", "start": "2024-01-01T00:00:00Z", "end": "2024-01-01T01:00:00Z",
		 "geo": {"geometry": {"type": "Point", "coordinates": [-74.0, 40.7]}}},
		{"id": "b", "title": "Storm", "start": "2024-01-01T00:00:00Z", "end": "2024-01-02T00:00:00Z",
		 "geo": {"geometry": {"type": "Polygon", "coordinates": [[[-74.1, 40.6], [-73.9, 40.6], [-73.9, 40.8], [-74.1, 40.6]]]}, "placekey": "pk"}},
		{"id": "c", "title": "Flood", "start": "2024-01-01T00:00:00Z", "end": "2024-01-02T00:00:00Z",
		 "geo": {"geometry": {"type": "MultiPolygon", "coordinates": [[[[1, 2], [3, 4], [5, 6], [1, 2]]]]}}}
	]}`

	var resp EventsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Len(t, resp.Results, 3)

	_, _, ok := resp.Results[0].Point()
	assert.True(t, ok)

	_, _, ok = resp.Results[1].Point()
	assert.False(t, ok, "polygon geometry has no single point")
	require.NotNil(t, resp.Results[1].Geo.Placekey)
	assert.Equal(t, "pk", *resp.Results[1].Geo.Placekey)

	_, _, ok = resp.Results[2].Point()
	assert.False(t, ok)
}

func TestFindLocation(t *testing.T) {
	locs := []Location{{ID: "a"}, {ID: "b", Radius: 3, RadiusUnit: RadiusUnitKilometers}}
	got := FindLocation(locs, "b")
	require.NotNil(t, got)
	assert.Equal(t, SuggestedRadius{Radius: 3, RadiusUnit: RadiusUnitKilometers}, got.SuggestedRadius())
	assert.Nil(t, FindLocation(locs, "c"))
}

package util

import (
	"testing"

	"es-server/models"

	"github.com/stretchr/testify/assert"
)

func TestToMeters(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  models.RadiusUnit
		want  float64
	}{
		{"miles", 1, models.RadiusUnitMiles, 1609},
		{"kilometers", 1, models.RadiusUnitKilometers, 1000},
		{"feet", 1, models.RadiusUnitFeet, 0.3048},
		{"meters", 5, models.RadiusUnitMeters, 5},
		{"unknown passes through", 5, models.RadiusUnit("xyz"), 5},
		{"fractional miles", 2.5, models.RadiusUnitMiles, 4022.5},
		{"zero", 0, models.RadiusUnitKilometers, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, ToMeters(test.value, test.unit), 1e-9)
		})
	}
}

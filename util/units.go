package util

import "es-server/models"

// ToMeters converts a radius in the given unit into meters. Units outside
// mi/ft/km are returned unchanged, which is also the correct answer for "m".
func ToMeters(value float64, unit models.RadiusUnit) float64 {
	switch unit {
	case models.RadiusUnitMiles:
		return value * 1609
	case models.RadiusUnitFeet:
		return value * 0.3048
	case models.RadiusUnitKilometers:
		return value * 1000
	default:
		return value
	}
}

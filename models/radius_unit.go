package models

import (
	"errors"
	"fmt"
)

// RadiusUnit is the unit attached to a saved location's suggested radius.
type RadiusUnit string

const (
	RadiusUnitMiles      RadiusUnit = "mi"
	RadiusUnitFeet       RadiusUnit = "ft"
	RadiusUnitKilometers RadiusUnit = "km"
	RadiusUnitMeters     RadiusUnit = "m"
)

var ErrUnknownRadiusUnit = errors.New("unknown radius unit")

// ParseRadiusUnit maps a raw unit tag onto the closed set of supported units.
// The raw tag is returned alongside the error so callers may still carry it.
func ParseRadiusUnit(s string) (RadiusUnit, error) {
	switch RadiusUnit(s) {
	case RadiusUnitMiles, RadiusUnitFeet, RadiusUnitKilometers, RadiusUnitMeters:
		return RadiusUnit(s), nil
	}
	return RadiusUnit(s), fmt.Errorf("%w: %q", ErrUnknownRadiusUnit, s)
}

func (u RadiusUnit) String() string { return string(u) }

package services

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver maps coordinates onto an IANA zone name.
type TimezoneResolver interface {
	Resolve(lat, lon float64) (string, bool)
}

// TZFResolver resolves zones offline from the tzf polygon data.
type TZFResolver struct {
	finder tzf.F
}

func NewTZFResolver() (*TZFResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone data: %w", err)
	}
	return &TZFResolver{finder: finder}, nil
}

func (r *TZFResolver) Resolve(lat, lon float64) (string, bool) {
	name := r.finder.GetTimezoneName(lon, lat)
	return name, name != ""
}

// FixedTimezoneResolver answers every lookup with the same zone. An empty
// zone means "unknown".
type FixedTimezoneResolver string

func (r FixedTimezoneResolver) Resolve(lat, lon float64) (string, bool) {
	return string(r), r != ""
}

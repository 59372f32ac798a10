package geo

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"lokalBack/internal/models"
)

// ErrUnresolved means no strategy produced a coordinate for the listing.
var ErrUnresolved = errors.New("geo: coordinate unresolved")

// Geocoder turns a free-text address into a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}

// Strategy is one way of obtaining a coordinate for a listing. ok=false with
// a nil error means "this strategy does not apply"; the chain moves on.
type Strategy func(ctx context.Context, b models.Business) (lat, lon float64, ok bool, err error)

// Resolver tries its strategies in order and stops at the first success.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the standard chain: embedded address marker, explicit
// stored fields, forward geocoding. geocoder may be nil to disable the
// network strategy.
func NewResolver(geocoder Geocoder) *Resolver {
	strategies := []Strategy{AddressMarker, ExplicitFields}
	if geocoder != nil {
		strategies = append(strategies, GeocodeAddress(geocoder))
	}
	return &Resolver{strategies: strategies}
}

// Resolve returns the first coordinate any strategy yields. Strategy errors
// are not fatal to the chain; only the last error is reported when every
// strategy fails.
func (r *Resolver) Resolve(ctx context.Context, b models.Business) (float64, float64, error) {
	lastErr := ErrUnresolved
	for _, s := range r.strategies {
		lat, lon, ok, err := s(ctx, b)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return lat, lon, nil
		}
	}
	return 0, 0, lastErr
}

// addressMarkerRe matches coordinates embedded in address text, e.g.
// "Main St 5 lat:43.238949 lon:76.889709".
var addressMarkerRe = regexp.MustCompile(`lat:\s*(-?\d+(?:\.\d+)?)\s*,?\s*lon:\s*(-?\d+(?:\.\d+)?)`)

// AddressMarker extracts a "lat:… lon:…" marker from the address field.
func AddressMarker(_ context.Context, b models.Business) (float64, float64, bool, error) {
	m := addressMarkerRe.FindStringSubmatch(b.Address)
	if m == nil {
		return 0, 0, false, nil
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false, nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false, nil
	}
	return lat, lon, true, nil
}

// ExplicitFields uses the listing's stored numeric coordinates when present.
func ExplicitFields(_ context.Context, b models.Business) (float64, float64, bool, error) {
	if b.Latitude == nil || b.Longitude == nil {
		return 0, 0, false, nil
	}
	return *b.Latitude, *b.Longitude, true, nil
}

// GeocodeAddress wraps a Geocoder as the final, network-backed strategy.
func GeocodeAddress(g Geocoder) Strategy {
	return func(ctx context.Context, b models.Business) (float64, float64, bool, error) {
		lat, lon, err := g.Geocode(ctx, b.Address)
		if err != nil {
			return 0, 0, false, err
		}
		return lat, lon, true, nil
	}
}

package geo

import (
	"context"
	"errors"
	"testing"

	"lokalBack/internal/models"
)

type stubGeocoder struct {
	lat, lon float64
	err      error
	calls    int
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (float64, float64, error) {
	s.calls++
	return s.lat, s.lon, s.err
}

func fp(v float64) *float64 { return &v }

func TestAddressMarker(t *testing.T) {
	cases := []struct {
		name     string
		address  string
		wantOK   bool
		wantLat  float64
		wantLon  float64
	}{
		{"plain marker", "Av. Juarez 5 lat:19.4326 lon:-99.1332", true, 19.4326, -99.1332},
		{"comma separated", "lat: 20.5, lon: -103.4", true, 20.5, -103.4},
		{"no marker", "Av. Juarez 5, Centro", false, 0, 0},
		{"out of range lat", "lat:95.0 lon:10.0", false, 0, 0},
		{"out of range lon", "lat:10.0 lon:190.0", false, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, ok, err := AddressMarker(context.Background(), models.Business{Address: tc.address})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v got %v", tc.wantOK, ok)
			}
			if ok && (lat != tc.wantLat || lon != tc.wantLon) {
				t.Fatalf("expected (%f, %f) got (%f, %f)", tc.wantLat, tc.wantLon, lat, lon)
			}
		})
	}
}

func TestResolverPrecedence(t *testing.T) {
	geocoder := &stubGeocoder{lat: 1, lon: 1}
	r := NewResolver(geocoder)

	// Marker wins over stored fields and geocoding.
	b := models.Business{
		Address:   "Calle 1 lat:19.0 lon:-99.0",
		Latitude:  fp(20.0),
		Longitude: fp(-100.0),
	}
	lat, lon, err := r.Resolve(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 19.0 || lon != -99.0 {
		t.Fatalf("expected marker coordinate, got (%f, %f)", lat, lon)
	}
	if geocoder.calls != 0 {
		t.Fatalf("geocoder should not be called when a marker resolves")
	}

	// Stored fields win over geocoding.
	b = models.Business{Address: "Calle 2", Latitude: fp(20.0), Longitude: fp(-100.0)}
	lat, lon, err = r.Resolve(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 20.0 || lon != -100.0 {
		t.Fatalf("expected stored coordinate, got (%f, %f)", lat, lon)
	}
	if geocoder.calls != 0 {
		t.Fatalf("geocoder should not be called when stored fields resolve")
	}

	// Geocoding is the last resort.
	b = models.Business{Address: "Calle 3"}
	lat, lon, err = r.Resolve(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 1 || lon != 1 {
		t.Fatalf("expected geocoded coordinate, got (%f, %f)", lat, lon)
	}
	if geocoder.calls != 1 {
		t.Fatalf("expected 1 geocoder call, got %d", geocoder.calls)
	}
}

func TestResolverAllStrategiesFail(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("service unavailable")}
	r := NewResolver(geocoder)

	_, _, err := r.Resolve(context.Background(), models.Business{Address: "Calle 4"})
	if err == nil {
		t.Fatalf("expected an error when no strategy resolves")
	}
}

func TestResolverWithoutGeocoder(t *testing.T) {
	r := NewResolver(nil)

	_, _, err := r.Resolve(context.Background(), models.Business{Address: "Calle 5"})
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
}

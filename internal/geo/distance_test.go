package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 19.4326, -99.1332, 19.4326, -99.1332, 0, 0.001},
		{"mexico city to guadalajara", 19.4326, -99.1332, 20.6597, -103.3496, 461, 5},
		{"across equator", -1.0, 0.0, 1.0, 0.0, 222.4, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Fatalf("expected %.1f km got %.1f km", tc.want, got)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(19.4326, -99.1332, 20.6597, -103.3496)
	b := Distance(20.6597, -103.3496, 19.4326, -99.1332)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distances, got %f and %f", a, b)
	}
}

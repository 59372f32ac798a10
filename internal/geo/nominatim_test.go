package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimGeocode(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"19.4326","lon":"-99.1332"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.Client(), srv.URL, "lokalBack-test/1.0", "Mexico")
	lat, lon, err := c.Geocode(context.Background(), "Av. Juarez 5, Centro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 19.4326 || lon != -99.1332 {
		t.Fatalf("expected (19.4326, -99.1332) got (%f, %f)", lat, lon)
	}
	if gotQuery != "Av. Juarez 5, Centro, Mexico" {
		t.Fatalf("expected country appended to query, got %q", gotQuery)
	}
	if gotUA != "lokalBack-test/1.0" {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
}

func TestNominatimGeocodeErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"empty result list", http.StatusOK, `[]`},
		{"rate limited", http.StatusTooManyRequests, `slow down`},
		{"malformed payload", http.StatusOK, `{"not":"a list"}`},
		{"non numeric coordinates", http.StatusOK, `[{"lat":"north","lon":"west"}]`},
		{"out of range", http.StatusOK, `[{"lat":"95.0","lon":"10.0"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewNominatimClient(srv.Client(), srv.URL, "", "")
			if _, _, err := c.Geocode(context.Background(), "somewhere"); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestNominatimGeocodeEmptyAddress(t *testing.T) {
	c := NewNominatimClient(nil, "", "", "")
	if _, _, err := c.Geocode(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty query")
	}
}

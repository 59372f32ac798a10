package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"

// NominatimClient is a forward-geocoding client. One free-text query in,
// at most one candidate out.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	country    string
}

// NewNominatimClient constructs a geocoding client. country is appended to
// every query to improve match accuracy; userAgent identifies the caller as
// the service's usage policy requires.
func NewNominatimClient(httpClient *http.Client, baseURL, userAgent, country string) *NominatimClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultGeocodeBaseURL
	}
	return &NominatimClient{httpClient: httpClient, baseURL: baseURL, userAgent: userAgent, country: country}
}

// Geocode returns coordinates for the given address. A non-success response
// or an empty candidate list is an error; callers treat any error as "no
// coordinate available".
func (c *NominatimClient) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if strings.TrimSpace(address) == "" {
		return 0, 0, errors.New("geocode: empty query")
	}

	ctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	query := address
	if c.country != "" {
		query = address + ", " + c.country
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, 0, fmt.Errorf("geocode: http %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	// The service returns lat/lon as numeric strings.
	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("geocode: decode: %w", err)
	}
	if len(payload) == 0 {
		return 0, 0, fmt.Errorf("geocode: no results (query=%q)", query)
	}

	lat, err1 := strconv.ParseFloat(payload[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(payload[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New("geocode: non-numeric coordinates in response")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("geocode: coordinates out of range lat=%f lon=%f", lat, lon)
	}
	return lat, lon, nil
}

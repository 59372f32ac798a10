package directory

import (
	"testing"
	"time"

	"lokalBack/internal/models"
	"lokalBack/internal/schedule"
)

func fp(v float64) *float64 { return &v }

// A Monday at 10:00 so open_now checks are deterministic.
var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

// Origin near the Mexico City Zocalo; listing coordinates are offset from it.
var (
	userLat = fp(19.4326)
	userLon = fp(-99.1332)
)

func fixtureListings() []models.Business {
	return []models.Business{
		{
			ID: 1, Name: "Tacos El Guero", Category: "Restaurants", PriceTier: "$",
			Rating: 4.8, ReviewsCount: 120, IsOpen: true,
			ResolvedLat: fp(19.4330), ResolvedLon: fp(-99.1340),
		},
		{
			ID: 2, Name: "La Fonda Azul", Category: "Restaurants", PriceTier: "$$",
			Rating: 3.9, ReviewsCount: 310, IsOpen: false,
			ResolvedLat: fp(19.4700), ResolvedLon: fp(-99.2000),
		},
		{
			ID: 3, Name: "Barberia Moderna", Category: "Beauty", PriceTier: "$$",
			Rating: 4.2, ReviewsCount: 45, IsOpen: true,
			ResolvedLat: fp(19.5000), ResolvedLon: fp(-99.1000),
			Services: "haircut, shave",
		},
		{
			ID: 4, Name: "Cafe Central", Category: "Cafes", PriceTier: "$",
			Rating: 4.5, ReviewsCount: 88, IsOpen: true,
			Schedule: schedule.Weekly{"monday": {{Open: "08:00", Close: "20:00"}}},
			ResolvedLat: fp(19.4400), ResolvedLon: fp(-99.1400),
		},
		{
			ID: 5, Name: "Vulcanizadora Norte", Category: "Auto", PriceTier: "$",
			Rating: 4.0, ReviewsCount: 12, IsOpen: true,
			// No resolved coordinate.
		},
	}
}

func resultIDs(resp models.SearchResponse) []int {
	ids := make([]int, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		ids = append(ids, b.ID)
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchNoFiltersReturnsAll(t *testing.T) {
	resp := Search(fixtureListings(), models.SearchRequest{Page: 1}, testNow)
	if resp.TotalCount != 5 {
		t.Fatalf("expected all 5 listings, got %d", resp.TotalCount)
	}
}

func TestCategoryFilter(t *testing.T) {
	req := models.SearchRequest{Categories: []string{"restaurants"}, Page: 1}
	resp := Search(fixtureListings(), req, testNow)

	if resp.TotalCount != 2 {
		t.Fatalf("expected 2 restaurants, got %d", resp.TotalCount)
	}
	for _, b := range resp.Businesses {
		if b.Category != "Restaurants" {
			t.Fatalf("unexpected category %q in results", b.Category)
		}
	}
}

func TestQueryMatchesAcrossFields(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  []int
	}{
		{"name match", "tacos", []int{1}},
		{"services match", "haircut", []int{3}},
		{"case insensitive", "CAFE", []int{4}},
		{"no match", "plumbing", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := Search(fixtureListings(), models.SearchRequest{Query: tc.query, Page: 1}, testNow)
			got := resultIDs(resp)
			if len(tc.want) == 0 && len(got) != 0 {
				t.Fatalf("expected no results, got %v", got)
			}
			if len(tc.want) > 0 && !equalIDs(got, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestRatingFloorsCollapseToStrictest(t *testing.T) {
	req := models.SearchRequest{RatingFloors: []float64{3, 4.5}, Page: 1}
	resp := Search(fixtureListings(), req, testNow)

	for _, b := range resp.Businesses {
		if b.Rating < 4.5 {
			t.Fatalf("listing %d with rating %.1f passed a 4.5 floor", b.ID, b.Rating)
		}
	}
	if resp.TotalCount != 2 {
		t.Fatalf("expected 2 listings at 4.5+, got %d", resp.TotalCount)
	}
}

func TestOpenNowPrefersSchedule(t *testing.T) {
	listings := []models.Business{
		// Flag says open but the schedule says closed on Monday morning.
		{ID: 1, Name: "A", Rating: 5, IsOpen: true,
			Schedule: schedule.Weekly{"monday": {{Open: "18:00", Close: "23:00"}}}},
		// No schedule, flag is trusted.
		{ID: 2, Name: "B", Rating: 4, IsOpen: true},
		{ID: 3, Name: "C", Rating: 3, IsOpen: false},
	}

	resp := Search(listings, models.SearchRequest{OpenNow: true, Page: 1}, testNow)
	if !equalIDs(resultIDs(resp), []int{2}) {
		t.Fatalf("expected only listing 2, got %v", resultIDs(resp))
	}
}

func TestRadiusFilter(t *testing.T) {
	// Listing 1 and 4 are within ~1 km; 2 and 3 are several km out; 5 has no
	// coordinate and must never pass a radius filter.
	req := models.SearchRequest{
		RadiusKm: []float64{1, 5},
		UserLat:  userLat, UserLon: userLon,
		Page: 1,
	}
	resp := Search(fixtureListings(), req, testNow)

	for _, b := range resp.Businesses {
		if b.ID == 5 {
			t.Fatalf("listing without coordinates passed the radius filter")
		}
		if b.DistanceKm == nil || *b.DistanceKm > 5 {
			t.Fatalf("listing %d outside the 5 km band", b.ID)
		}
	}
}

func TestRadiusFilterSkippedWithoutLocation(t *testing.T) {
	req := models.SearchRequest{RadiusKm: []float64{1}, Page: 1}
	resp := Search(fixtureListings(), req, testNow)
	if resp.TotalCount != 5 {
		t.Fatalf("expected radius filter to be skipped, got %d of 5", resp.TotalCount)
	}
}

func TestSortNearMe(t *testing.T) {
	req := models.SearchRequest{
		Sort:    SortNearMe,
		UserLat: userLat, UserLon: userLon,
		Page: 1,
	}
	resp := Search(fixtureListings(), req, testNow)

	var prev float64 = -1
	for i, b := range resp.Businesses {
		d := distanceOf(b)
		if d < prev {
			t.Fatalf("distances not monotonic at position %d", i)
		}
		prev = d
	}
	last := resp.Businesses[len(resp.Businesses)-1]
	if last.ID != 5 {
		t.Fatalf("expected the unresolved listing to rank last, got %d", last.ID)
	}
}

func TestSortNearMeWithoutLocationFallsBackToRating(t *testing.T) {
	resp := Search(fixtureListings(), models.SearchRequest{Sort: SortNearMe, Page: 1}, testNow)

	for i := 1; i < len(resp.Businesses); i++ {
		if resp.Businesses[i].Rating > resp.Businesses[i-1].Rating {
			t.Fatalf("expected rating order, got %.1f before %.1f",
				resp.Businesses[i-1].Rating, resp.Businesses[i].Rating)
		}
	}
}

func TestSortByReviews(t *testing.T) {
	resp := Search(fixtureListings(), models.SearchRequest{Sort: SortReviews, Page: 1}, testNow)

	for i := 1; i < len(resp.Businesses); i++ {
		if resp.Businesses[i].ReviewsCount > resp.Businesses[i-1].ReviewsCount {
			t.Fatalf("reviews not in descending order at position %d", i)
		}
	}
}

func TestSortByName(t *testing.T) {
	resp := Search(fixtureListings(), models.SearchRequest{Sort: SortName, Page: 1}, testNow)

	want := []int{3, 4, 2, 1, 5}
	if !equalIDs(resultIDs(resp), want) {
		t.Fatalf("expected %v got %v", want, resultIDs(resp))
	}
}

func TestPagination(t *testing.T) {
	listings := make([]models.Business, 14)
	for i := range listings {
		listings[i] = models.Business{
			ID:     i + 1,
			Name:   "Listing",
			Rating: float64(14 - i), // already in default sort order
		}
	}

	cases := []struct {
		name       string
		page       int
		wantPage   int
		wantCount  int
		wantFirst  int
	}{
		{"first page", 1, 1, 6, 1},
		{"middle page", 2, 2, 6, 7},
		{"short last page", 3, 3, 2, 13},
		{"zero clamps to first", 0, 1, 6, 1},
		{"past the end clamps to last", 99, 3, 2, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := Search(listings, models.SearchRequest{Page: tc.page}, testNow)
			if resp.TotalPages != 3 || resp.TotalCount != 14 {
				t.Fatalf("expected 3 pages of 14, got %d pages of %d", resp.TotalPages, resp.TotalCount)
			}
			if resp.Page != tc.wantPage {
				t.Fatalf("expected page %d got %d", tc.wantPage, resp.Page)
			}
			if len(resp.Businesses) != tc.wantCount {
				t.Fatalf("expected %d listings got %d", tc.wantCount, len(resp.Businesses))
			}
			if resp.Businesses[0].ID != tc.wantFirst {
				t.Fatalf("expected first listing %d got %d", tc.wantFirst, resp.Businesses[0].ID)
			}
		})
	}
}

func TestPaginationEmptyResult(t *testing.T) {
	resp := Search(fixtureListings(), models.SearchRequest{Query: "nothing matches this", Page: 1}, testNow)
	if resp.TotalCount != 0 || resp.TotalPages != 0 || len(resp.Businesses) != 0 {
		t.Fatalf("expected an empty result set, got %+v", resp)
	}
}

func TestSearchIsRepeatable(t *testing.T) {
	req := models.SearchRequest{
		Categories: []string{"Restaurants"},
		Sort:       SortNearMe,
		UserLat:    userLat, UserLon: userLon,
		Page: 1,
	}

	first := Search(fixtureListings(), req, testNow)
	second := Search(fixtureListings(), req, testNow)
	if !equalIDs(resultIDs(first), resultIDs(second)) {
		t.Fatalf("expected identical results, got %v and %v", resultIDs(first), resultIDs(second))
	}
}

func TestSnapshotAnnotateOnce(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]models.Business{{ID: 1, Name: "A"}})

	s.Annotate(1, 19.0, -99.0)
	s.Annotate(1, 50.0, 50.0) // ignored, coordinate is stable per session
	s.Annotate(2, 1.0, 1.0)   // unknown id is a no-op

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(all))
	}
	if all[0].ResolvedLat == nil || *all[0].ResolvedLat != 19.0 {
		t.Fatalf("expected first annotation to stick, got %+v", all[0].ResolvedLat)
	}
}

func TestSnapshotAllReturnsCopy(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]models.Business{{ID: 1, Name: "A"}})

	out := s.All()
	out[0].Name = "mutated"

	if s.All()[0].Name != "A" {
		t.Fatalf("snapshot was mutated through a returned copy")
	}
}

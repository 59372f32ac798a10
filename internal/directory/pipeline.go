// Package directory implements the in-memory search pipeline over the
// current listing snapshot: predicate filters combined with AND, a single
// active sort criterion and fixed-size pagination.
package directory

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lokalBack/internal/geo"
	"lokalBack/internal/models"
)

const DefaultPageSize = 6

// Sort options, highest precedence first. Near-me is only honored when the
// request carries a user location; the default is highest rated.
const (
	SortNearMe  = "near_me"
	SortRating  = "rating"
	SortReviews = "reviews"
	SortName    = "name"
)

// Radius bands selectable in the distance filter, km.
var RadiusBands = []float64{1, 5, 10, 25, 50}

// Snapshot holds the full set of fetched listings for the current session.
// Coordinate annotation mutates only this copy, never the backing store.
type Snapshot struct {
	mu       sync.RWMutex
	listings []models.Business
	byID     map[int]int
}

func NewSnapshot() *Snapshot {
	return &Snapshot{byID: make(map[int]int)}
}

// Replace swaps in a freshly fetched listing set.
func (s *Snapshot) Replace(listings []models.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = make([]models.Business, len(listings))
	copy(s.listings, listings)
	s.byID = make(map[int]int, len(listings))
	for i, b := range s.listings {
		s.byID[b.ID] = i
	}
}

// Annotate records a resolved coordinate for one listing. Once set it is
// stable for the session; later calls are ignored.
func (s *Snapshot) Annotate(businessID int, lat, lon float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[businessID]
	if !ok {
		return
	}
	if s.listings[i].ResolvedLat != nil && s.listings[i].ResolvedLon != nil {
		return
	}
	s.listings[i].ResolvedLat = &lat
	s.listings[i].ResolvedLon = &lon
}

// All returns a copy of the snapshot safe to filter and reorder.
func (s *Snapshot) All() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Business, len(s.listings))
	copy(out, s.listings)
	return out
}

// Len reports the snapshot size.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

// Search runs the full pipeline: distance annotation, filters, sort, page.
func Search(listings []models.Business, req models.SearchRequest, now time.Time) models.SearchResponse {
	annotateDistances(listings, req)
	filtered := applyFilters(listings, req, now)
	sortListings(filtered, req)
	return paginate(filtered, req.Page, DefaultPageSize)
}

// distanceOf returns the listing's resolved distance, or the sentinel when
// no coordinate is available.
func distanceOf(b models.Business) float64 {
	if b.DistanceKm == nil {
		return geo.UnknownDistance
	}
	return *b.DistanceKm
}

func annotateDistances(listings []models.Business, req models.SearchRequest) {
	if req.UserLat == nil || req.UserLon == nil {
		return
	}
	for i := range listings {
		b := &listings[i]
		if b.ResolvedLat == nil || b.ResolvedLon == nil {
			b.DistanceKm = nil
			continue
		}
		d := geo.Distance(*req.UserLat, *req.UserLon, *b.ResolvedLat, *b.ResolvedLon)
		b.DistanceKm = &d
	}
}

func applyFilters(listings []models.Business, req models.SearchRequest, now time.Time) []models.Business {
	query := strings.ToLower(strings.TrimSpace(req.Query))

	// Several independently selectable floors collapse to the strictest one.
	var ratingFloor float64
	for _, f := range req.RatingFloors {
		if f > ratingFloor {
			ratingFloor = f
		}
	}

	// "Within any selected band" is equivalent to the largest selected radius.
	// Without a user location the distance filter is skipped entirely.
	var maxRadius float64
	if req.UserLat != nil && req.UserLon != nil {
		for _, r := range req.RadiusKm {
			if r > maxRadius {
				maxRadius = r
			}
		}
	}

	filtered := make([]models.Business, 0, len(listings))
	for _, b := range listings {
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		if len(req.Categories) > 0 && !containsFold(req.Categories, b.Category) {
			continue
		}
		if b.Rating < ratingFloor {
			continue
		}
		if len(req.PriceTiers) > 0 && !containsFold(req.PriceTiers, b.PriceTier) {
			continue
		}
		if req.OpenNow && !isOpen(b, now) {
			continue
		}
		if maxRadius > 0 && distanceOf(b) > maxRadius {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// matchesQuery reports whether any searchable field contains the query.
func matchesQuery(b models.Business, query string) bool {
	for _, field := range []string{
		b.Name, b.Services, b.Address, b.Category, b.BusinessType, b.Description,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// isOpen prefers the weekly schedule when one exists; the stored flag is a
// fallback for listings without one.
func isOpen(b models.Business, now time.Time) bool {
	if len(b.Schedule) > 0 {
		return b.Schedule.OpenAt(now)
	}
	return b.IsOpen
}

func sortListings(listings []models.Business, req models.SearchRequest) {
	option := req.Sort
	if option == SortNearMe && (req.UserLat == nil || req.UserLon == nil) {
		option = SortRating
	}

	switch option {
	case SortNearMe:
		sort.SliceStable(listings, func(i, j int) bool {
			return distanceOf(listings[i]) < distanceOf(listings[j])
		})
	case SortReviews:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].ReviewsCount > listings[j].ReviewsCount
		})
	case SortName:
		cl := collate.New(language.Und, collate.Loose)
		sort.SliceStable(listings, func(i, j int) bool {
			return cl.CompareString(listings[i].Name, listings[j].Name) < 0
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Rating > listings[j].Rating
		})
	}
}

// paginate slices the ranked set into fixed-size pages. Pages are 1-based;
// out-of-range pages clamp to the nearest valid one.
func paginate(listings []models.Business, page, pageSize int) models.SearchResponse {
	total := len(listings)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.SearchResponse{
		Businesses: listings[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}
}

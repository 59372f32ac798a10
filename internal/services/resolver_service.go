package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/time/rate"

	"lokalBack/internal/directory"
	"lokalBack/internal/geo"
	"lokalBack/internal/models"
)

var ErrResolveRunning = errors.New("coordinate resolution already running")

// ResolveStatus is the progress surfaced to the UI while the batch runs.
type ResolveStatus struct {
	Running  bool `json:"running"`
	Done     int  `json:"done"`
	Total    int  `json:"total"`
	Resolved int  `json:"resolved"`
}

// ResolverService annotates the listing snapshot with coordinates, one
// listing at a time. Geocoding calls go through a 1 req/s limiter to respect
// the external service's usage policy; cache hits and non-network strategies
// are not throttled.
type ResolverService struct {
	Snapshot *directory.Snapshot
	Resolver *geo.Resolver
	Cache    *geo.CoordinateCache
	ErrorLog *log.Logger

	limiter *rate.Limiter

	mu     sync.Mutex
	cancel context.CancelFunc
	status ResolveStatus
}

func NewResolverService(snapshot *directory.Snapshot, geocoder geo.Geocoder, cache *geo.CoordinateCache, errorLog *log.Logger) *ResolverService {
	limiter := rate.NewLimiter(1, 1) // 1 request per second
	return &ResolverService{
		Snapshot: snapshot,
		Resolver: geo.NewResolver(&throttledGeocoder{geocoder: geocoder, limiter: limiter}),
		Cache:    cache,
		ErrorLog: errorLog,
		limiter:  limiter,
	}
}

// throttledGeocoder blocks until the limiter grants a slot, so the resolver
// chain itself stays a plain sequence of strategies.
type throttledGeocoder struct {
	geocoder geo.Geocoder
	limiter  *rate.Limiter
}

func (t *throttledGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if t.geocoder == nil {
		return 0, 0, geo.ErrUnresolved
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}
	return t.geocoder.Geocode(ctx, address)
}

// Start kicks off a background annotation pass over the given listings.
// Only one pass runs at a time.
func (s *ResolverService) Start(ctx context.Context, listings []models.Business) error {
	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		return ErrResolveRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.status = ResolveStatus{Running: true, Total: len(listings)}
	s.mu.Unlock()

	go s.run(runCtx, listings)
	return nil
}

// Cancel stops a running pass between iterations. Already-annotated
// listings keep their coordinates.
func (s *ResolverService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *ResolverService) Status() ResolveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ResolverService) run(ctx context.Context, listings []models.Business) {
	defer func() {
		s.mu.Lock()
		s.status.Running = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	for _, b := range listings {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resolved := s.resolveOne(ctx, b)

		s.mu.Lock()
		s.status.Done++
		if resolved {
			s.status.Resolved++
		}
		s.mu.Unlock()
	}
}

// resolveOne annotates a single listing. Failures are non-fatal: the listing
// is left without a coordinate and ranks as maximally distant.
func (s *ResolverService) resolveOne(ctx context.Context, b models.Business) bool {
	if b.ResolvedLat != nil && b.ResolvedLon != nil {
		return true
	}

	if s.Cache != nil {
		lat, lon, ok, err := s.Cache.Get(ctx, b.ID)
		if err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("coordinate cache read for business %d: %v", b.ID, err)
		}
		if ok {
			s.Snapshot.Annotate(b.ID, lat, lon)
			return true
		}
	}

	lat, lon, err := s.Resolver.Resolve(ctx, b)
	if err != nil {
		if ctx.Err() == nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("resolve coordinates for business %d: %v", b.ID, err)
		}
		return false
	}

	s.Snapshot.Annotate(b.ID, lat, lon)
	if s.Cache != nil {
		if err := s.Cache.Put(ctx, b.ID, lat, lon); err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("coordinate cache write for business %d: %v", b.ID, err)
		}
	}
	return true
}

package services

import (
	"context"
	"time"

	"lokalBack/internal/directory"
	"lokalBack/internal/geo"
	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type BusinessService struct {
	BusinessRepo *repositories.BusinessRepository
	Snapshot     *directory.Snapshot
	CoordCache   *geo.CoordinateCache
}

func (s *BusinessService) CreateBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	b.Schedule = b.Schedule.Normalize()
	if len(b.Schedule) > 0 {
		b.HoursText = b.Schedule.HoursText()
		b.IsOpen = b.Schedule.OpenAt(time.Now())
	}
	if b.Status == "" {
		b.Status = "active"
	}
	created, err := s.BusinessRepo.CreateBusiness(ctx, b)
	if err != nil {
		return models.Business{}, err
	}
	if err := s.RefreshSnapshot(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (s *BusinessService) GetBusinessByID(ctx context.Context, id int) (models.Business, error) {
	return s.BusinessRepo.GetBusinessByID(ctx, id)
}

func (s *BusinessService) GetBusinessByPublicID(ctx context.Context, publicID string) (models.Business, error) {
	return s.BusinessRepo.GetBusinessByPublicID(ctx, publicID)
}

func (s *BusinessService) UpdateBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	b.Schedule = b.Schedule.Normalize()
	if len(b.Schedule) > 0 {
		// The schedule is authoritative: regenerate the hours text and the
		// open flag on every edit.
		b.HoursText = b.Schedule.HoursText()
		b.IsOpen = b.Schedule.OpenAt(time.Now())
	}
	updated, err := s.BusinessRepo.UpdateBusiness(ctx, b)
	if err != nil {
		return models.Business{}, err
	}
	// The address may have changed, so any cached geocode is stale.
	if s.CoordCache != nil {
		_ = s.CoordCache.Forget(ctx, updated.ID)
	}
	if err := s.RefreshSnapshot(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (s *BusinessService) DeleteBusiness(ctx context.Context, id int) error {
	if err := s.BusinessRepo.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	if s.CoordCache != nil {
		_ = s.CoordCache.Forget(ctx, id)
	}
	return s.RefreshSnapshot(ctx)
}

func (s *BusinessService) ArchiveBusiness(ctx context.Context, id int, archive bool) error {
	status := "archive"
	if !archive {
		status = "active"
	}
	if err := s.BusinessRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	return s.RefreshSnapshot(ctx)
}

// RefreshSnapshot repopulates the in-memory listing set from the store.
// Coordinate annotations are rebuilt by the resolver afterwards.
func (s *BusinessService) RefreshSnapshot(ctx context.Context) error {
	listings, err := s.BusinessRepo.FetchActive(ctx)
	if err != nil {
		return err
	}
	for i := range listings {
		// Explicit stored coordinates survive the reload; geocoded ones are
		// re-read from the cache by the resolver worker.
		if listings[i].Latitude != nil && listings[i].Longitude != nil {
			listings[i].ResolvedLat = listings[i].Latitude
			listings[i].ResolvedLon = listings[i].Longitude
		}
	}
	s.Snapshot.Replace(listings)
	return nil
}

// Search runs the directory pipeline over the current snapshot, loading it
// on first use.
func (s *BusinessService) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	if s.Snapshot.Len() == 0 {
		if err := s.RefreshSnapshot(ctx); err != nil {
			return models.SearchResponse{}, err
		}
	}
	return directory.Search(s.Snapshot.All(), req, time.Now()), nil
}

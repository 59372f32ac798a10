package services

import (
	"context"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

// FavoritesPublisher receives a change event after every favorites mutation.
// The websocket hub implements it; tests can drop in a recorder.
type FavoritesPublisher interface {
	PublishFavorites(event models.FavoritesEvent)
}

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	Publisher    FavoritesPublisher
}

func (s *FavoriteService) AddToFavorites(ctx context.Context, fav models.Favorite) error {
	if err := s.FavoriteRepo.AddToFavorites(ctx, fav); err != nil {
		return err
	}
	s.publish(ctx, fav.VisitorID, "added", fav.BusinessID)
	return nil
}

func (s *FavoriteService) RemoveFromFavorites(ctx context.Context, visitorID string, businessID int) error {
	if err := s.FavoriteRepo.RemoveFromFavorites(ctx, visitorID, businessID); err != nil {
		return err
	}
	s.publish(ctx, visitorID, "removed", businessID)
	return nil
}

func (s *FavoriteService) ClearFavorites(ctx context.Context, visitorID string) error {
	if err := s.FavoriteRepo.ClearFavorites(ctx, visitorID); err != nil {
		return err
	}
	s.publish(ctx, visitorID, "cleared", 0)
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, visitorID string, businessID int) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, visitorID, businessID)
}

func (s *FavoriteService) GetFavoritesByVisitor(ctx context.Context, visitorID string) ([]models.Favorite, error) {
	return s.FavoriteRepo.GetFavoritesByVisitor(ctx, visitorID)
}

func (s *FavoriteService) publish(ctx context.Context, visitorID, action string, businessID int) {
	if s.Publisher == nil {
		return
	}
	count, err := s.FavoriteRepo.CountByVisitor(ctx, visitorID)
	if err != nil {
		count = 0
	}
	s.Publisher.PublishFavorites(models.FavoritesEvent{
		VisitorID:  visitorID,
		Action:     action,
		BusinessID: businessID,
		Count:      count,
	})
}

package services

import (
	"context"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type ReviewService struct {
	ReviewsRepo  *repositories.ReviewRepository
	BusinessRepo *repositories.BusinessRepository
}

func (s *ReviewService) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	created, err := s.ReviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.BusinessRepo.UpdateRatingAggregates(ctx, review.BusinessID); err != nil {
		return models.Review{}, err
	}
	return created, nil
}

func (s *ReviewService) GetReviewsByBusinessID(ctx context.Context, businessID int) ([]models.Review, error) {
	return s.ReviewsRepo.GetReviewsByBusinessID(ctx, businessID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int) error {
	review, err := s.ReviewsRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ReviewsRepo.DeleteReview(ctx, id); err != nil {
		return err
	}
	return s.BusinessRepo.UpdateRatingAggregates(ctx, review.BusinessID)
}

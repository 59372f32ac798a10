package services

import (
	"context"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
)

type ClickService struct {
	ClickRepo    *repositories.ClickRepository
	BusinessRepo *repositories.BusinessRepository
}

// RecordWhatsAppClick logs one contact click after confirming the listing
// exists.
func (s *ClickService) RecordWhatsAppClick(ctx context.Context, click models.WhatsAppClick) error {
	if _, err := s.BusinessRepo.GetBusinessByID(ctx, click.BusinessID); err != nil {
		return err
	}
	return s.ClickRepo.RecordClick(ctx, click)
}

func (s *ClickService) GetStats(ctx context.Context, businessID int) (models.ClickStats, error) {
	return s.ClickRepo.GetStats(ctx, businessID)
}

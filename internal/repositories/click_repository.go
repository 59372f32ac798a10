package repositories

import (
	"context"
	"database/sql"
	"time"

	"lokalBack/internal/models"
)

type ClickRepository struct {
	DB *sql.DB
}

func (r *ClickRepository) RecordClick(ctx context.Context, click models.WhatsAppClick) error {
	query := `INSERT INTO whatsapp_clicks (business_id, visitor_id, created_at) VALUES (?, ?, NOW())`
	_, err := r.DB.ExecContext(ctx, query, click.BusinessID, click.VisitorID)
	return err
}

func (r *ClickRepository) GetStats(ctx context.Context, businessID int) (models.ClickStats, error) {
	stats := models.ClickStats{BusinessID: businessID}
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM whatsapp_clicks WHERE business_id = ?`, businessID).Scan(&stats.Total)
	if err != nil {
		return models.ClickStats{}, err
	}
	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM whatsapp_clicks WHERE business_id = ? AND created_at >= ?`,
		businessID, time.Now().AddDate(0, 0, -30),
	).Scan(&stats.Last30Days)
	if err != nil {
		return models.ClickStats{}, err
	}
	return stats, nil
}

// DeleteOlderThan removes click rows before the cutoff; the pruner calls
// this daily. Returns the number of rows removed.
func (r *ClickRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM whatsapp_clicks WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

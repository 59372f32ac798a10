package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"lokalBack/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) AddToFavorites(ctx context.Context, fav models.Favorite) error {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE visitor_id = ? AND business_id = ?`, fav.VisitorID, fav.BusinessID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return models.ErrAlreadyFavorite
	}
	query := `INSERT INTO favorites (visitor_id, business_id, created_at) VALUES (?, ?, NOW())`
	_, err := r.DB.ExecContext(ctx, query, fav.VisitorID, fav.BusinessID)
	return err
}

func (r *FavoriteRepository) RemoveFromFavorites(ctx context.Context, visitorID string, businessID int) error {
	query := `DELETE FROM favorites WHERE visitor_id = ? AND business_id = ?`
	_, err := r.DB.ExecContext(ctx, query, visitorID, businessID)
	return err
}

func (r *FavoriteRepository) ClearFavorites(ctx context.Context, visitorID string) error {
	query := `DELETE FROM favorites WHERE visitor_id = ?`
	_, err := r.DB.ExecContext(ctx, query, visitorID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, visitorID string, businessID int) (bool, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE visitor_id = ? AND business_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, visitorID, businessID).Scan(&count)
	return count > 0, err
}

func (r *FavoriteRepository) CountByVisitor(ctx context.Context, visitorID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE visitor_id = ?`, visitorID).Scan(&count)
	return count, err
}

func (r *FavoriteRepository) GetFavoritesByVisitor(ctx context.Context, visitorID string) ([]models.Favorite, error) {
	query := `SELECT f.id, f.visitor_id, f.business_id, f.created_at,
                     b.public_id, b.name, b.category, b.address, b.rating, b.image_path
             FROM favorites f
             JOIN businesses b ON f.business_id = b.id
             WHERE f.visitor_id = ?
             ORDER BY f.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		var imagePath sql.NullString
		err := rows.Scan(&fav.ID, &fav.VisitorID, &fav.BusinessID, &fav.CreatedAt,
			&fav.BusinessPublicID, &fav.Name, &fav.Category, &fav.Address, &fav.Rating, &imagePath)
		if err != nil {
			return nil, err
		}
		fav.ImagePath = imagePath.String
		favs = append(favs, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}
	return favs, nil
}

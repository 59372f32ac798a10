package repositories

import (
	"context"
	"database/sql"

	"lokalBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE visitor_id = ? AND business_id = ?`, rev.VisitorID, rev.BusinessID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	query := `
INSERT INTO reviews (business_id, visitor_id, author_name, rating, review, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		rev.BusinessID, rev.VisitorID, rev.AuthorName, rev.Rating, rev.Review,
	)
	if err != nil {
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByBusinessID(ctx context.Context, businessID int) ([]models.Review, error) {
	query := `
		SELECT id, business_id, visitor_id, author_name, rating, review, created_at, updated_at
		FROM reviews
		WHERE business_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.BusinessID, &rev.VisitorID, &rev.AuthorName,
			&rev.Rating, &rev.Review, &rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	query := `
		SELECT id, business_id, visitor_id, author_name, rating, review, created_at, updated_at
		FROM reviews WHERE id = ?
	`
	var rev models.Review
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rev.ID, &rev.BusinessID, &rev.VisitorID,
		&rev.AuthorName, &rev.Rating, &rev.Review, &rev.CreatedAt, &rev.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Review{}, models.ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

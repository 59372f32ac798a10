package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"lokalBack/internal/models"
	"lokalBack/internal/schedule"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
)

type BusinessRepository struct {
	DB *sql.DB
}

func (r *BusinessRepository) CreateBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	galleryJSON, err := json.Marshal(b.Gallery)
	if err != nil {
		return models.Business{}, err
	}
	scheduleJSON, err := json.Marshal(b.Schedule)
	if err != nil {
		return models.Business{}, err
	}

	query := `
		INSERT INTO businesses
			(public_id, name, category, business_type, price_tier, description, services, address,
			 latitude, longitude, rating, reviews_count, is_open, hours_text, schedule,
			 image_path, gallery, whatsapp, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		b.PublicID, b.Name, b.Category, b.BusinessType, b.PriceTier, b.Description, b.Services, b.Address,
		b.Latitude, b.Longitude, b.Rating, b.ReviewsCount, b.IsOpen, b.HoursText, scheduleJSON,
		b.ImagePath, galleryJSON, b.WhatsApp, b.Status,
	)
	if err != nil {
		return models.Business{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Business{}, err
	}
	b.ID = int(id)
	return b, nil
}

const businessColumns = `
	b.id, b.public_id, b.name, b.category, b.business_type, b.price_tier, b.description,
	b.services, b.address, b.latitude, b.longitude, b.rating, b.reviews_count, b.is_open,
	b.hours_text, b.schedule, b.image_path, b.gallery, b.whatsapp, b.status,
	b.created_at, b.updated_at`

func scanBusiness(scanner interface{ Scan(...any) error }) (models.Business, error) {
	var b models.Business
	var lat, lon sql.NullFloat64
	var businessType, hoursText, imagePath, whatsapp, status sql.NullString
	var scheduleJSON, galleryJSON sql.NullString

	err := scanner.Scan(
		&b.ID, &b.PublicID, &b.Name, &b.Category, &businessType, &b.PriceTier, &b.Description,
		&b.Services, &b.Address, &lat, &lon, &b.Rating, &b.ReviewsCount, &b.IsOpen,
		&hoursText, &scheduleJSON, &imagePath, &galleryJSON, &whatsapp, &status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return models.Business{}, err
	}

	if lat.Valid {
		b.Latitude = &lat.Float64
	}
	if lon.Valid {
		b.Longitude = &lon.Float64
	}
	b.BusinessType = businessType.String
	b.HoursText = hoursText.String
	b.ImagePath = imagePath.String
	b.WhatsApp = whatsapp.String
	b.Status = status.String

	if scheduleJSON.Valid && scheduleJSON.String != "" && scheduleJSON.String != "null" {
		var w schedule.Weekly
		if err := json.Unmarshal([]byte(scheduleJSON.String), &w); err != nil {
			log.Printf("failed to decode schedule for business %d: %v", b.ID, err)
		} else {
			b.Schedule = w
		}
	}
	if galleryJSON.Valid && galleryJSON.String != "" && galleryJSON.String != "null" {
		if err := json.Unmarshal([]byte(galleryJSON.String), &b.Gallery); err != nil {
			log.Printf("failed to decode gallery for business %d: %v", b.ID, err)
		}
	}
	return b, nil
}

func (r *BusinessRepository) GetBusinessByID(ctx context.Context, id int) (models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses b WHERE b.id = ?`
	b, err := scanBusiness(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Business{}, ErrBusinessNotFound
	}
	if err != nil {
		return models.Business{}, err
	}
	return b, nil
}

func (r *BusinessRepository) GetBusinessByPublicID(ctx context.Context, publicID string) (models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses b WHERE b.public_id = ?`
	b, err := scanBusiness(r.DB.QueryRowContext(ctx, query, publicID))
	if err == sql.ErrNoRows {
		return models.Business{}, ErrBusinessNotFound
	}
	if err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// FetchActive returns every active listing; the directory snapshot is
// populated from this once per session.
func (r *BusinessRepository) FetchActive(ctx context.Context) ([]models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses b WHERE b.status = 'active' ORDER BY b.id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("businesses rows error: %w", err)
	}
	return businesses, nil
}

func (r *BusinessRepository) UpdateBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	galleryJSON, err := json.Marshal(b.Gallery)
	if err != nil {
		return models.Business{}, err
	}
	scheduleJSON, err := json.Marshal(b.Schedule)
	if err != nil {
		return models.Business{}, err
	}

	query := `
		UPDATE businesses
		SET name = ?, category = ?, business_type = ?, price_tier = ?, description = ?,
		    services = ?, address = ?, latitude = ?, longitude = ?, is_open = ?,
		    hours_text = ?, schedule = ?, image_path = ?, gallery = ?, whatsapp = ?, updated_at = ?
		WHERE id = ?
	`
	updatedAt := time.Now()
	b.UpdatedAt = &updatedAt
	result, err := r.DB.ExecContext(ctx, query,
		b.Name, b.Category, b.BusinessType, b.PriceTier, b.Description,
		b.Services, b.Address, b.Latitude, b.Longitude, b.IsOpen,
		b.HoursText, scheduleJSON, b.ImagePath, galleryJSON, b.WhatsApp, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return models.Business{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Business{}, err
	}
	if rowsAffected == 0 {
		return models.Business{}, ErrBusinessNotFound
	}
	return r.GetBusinessByID(ctx, b.ID)
}

func (r *BusinessRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE businesses SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateRatingAggregates recomputes the listing's rating and review count
// from its reviews.
func (r *BusinessRepository) UpdateRatingAggregates(ctx context.Context, businessID int) error {
	query := `
		UPDATE businesses
		SET rating = COALESCE((SELECT ROUND(AVG(rating), 1) FROM reviews WHERE business_id = ?), 0),
		    reviews_count = (SELECT COUNT(*) FROM reviews WHERE business_id = ?)
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, businessID, businessID, businessID)
	return err
}

func (r *BusinessRepository) DeleteBusiness(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM businesses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

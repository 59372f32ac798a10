package models

import (
	"time"

	"lokalBack/internal/schedule"
)

// PriceTiers are the four ordinal price symbols a listing can carry.
var PriceTiers = []string{"$", "$$", "$$$", "$$$$"}

type Business struct {
	ID           int             `json:"id"`
	PublicID     string          `json:"public_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	BusinessType string          `json:"business_type,omitempty"`
	PriceTier    string          `json:"price_tier"`
	Description  string          `json:"description"`
	Services     string          `json:"services"`
	Address      string          `json:"address"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Rating       float64         `json:"rating"`
	ReviewsCount int             `json:"reviews_count"`
	IsOpen       bool            `json:"is_open"`
	HoursText    string          `json:"hours_text,omitempty"`
	Schedule     schedule.Weekly `json:"schedule,omitempty"`
	ImagePath    string          `json:"image_path,omitempty"`
	Gallery      []string        `json:"gallery,omitempty"`
	WhatsApp     string          `json:"whatsapp,omitempty"`
	Status       string          `json:"status,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`

	// Read-time enrichment; never written back to the store.
	ResolvedLat *float64 `json:"-"`
	ResolvedLon *float64 `json:"-"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

type SearchRequest struct {
	Query        string    `json:"query"`
	Categories   []string  `json:"categories"`
	RatingFloors []float64 `json:"rating_floors"`
	PriceTiers   []string  `json:"price_tiers"`
	OpenNow      bool      `json:"open_now"`
	RadiusKm     []float64 `json:"radius_km"`
	UserLat      *float64  `json:"user_lat,omitempty"`
	UserLon      *float64  `json:"user_lon,omitempty"`
	Sort         string    `json:"sort"` // near_me, rating, reviews, name
	Page         int       `json:"page"`
}

type SearchResponse struct {
	Businesses []Business `json:"businesses"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	TotalCount int        `json:"total_count"`
}

package models

import "time"

type Favorite struct {
	ID         int       `json:"id"`
	VisitorID  string    `json:"visitor_id"`
	BusinessID int       `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Embedded listing data for favorites pages.
	BusinessPublicID string  `json:"business_public_id,omitempty"`
	Name             string  `json:"name,omitempty"`
	Category         string  `json:"category,omitempty"`
	Address          string  `json:"address,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	ImagePath        string  `json:"image_path,omitempty"`
}

// FavoritesEvent is broadcast over the websocket hub after every mutation so
// open pages can refresh without polling.
type FavoritesEvent struct {
	VisitorID  string `json:"visitor_id"`
	Action     string `json:"action"` // added, removed, cleared
	BusinessID int    `json:"business_id,omitempty"`
	Count      int    `json:"count"`
}

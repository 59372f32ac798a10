package models

import "time"

// WhatsAppClick records one tap on a listing's WhatsApp contact button.
type WhatsAppClick struct {
	ID         int       `json:"id"`
	BusinessID int       `json:"business_id"`
	VisitorID  string    `json:"visitor_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ClickStats struct {
	BusinessID int `json:"business_id"`
	Total      int `json:"total"`
	Last30Days int `json:"last_30_days"`
}

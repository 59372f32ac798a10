package models

import (
	"time"
)

type Review struct {
	ID         int        `json:"id"`
	BusinessID int        `json:"business_id,omitempty"`
	VisitorID  string     `json:"visitor_id,omitempty"`
	AuthorName string     `json:"author_name"`
	Rating     float64    `json:"rating"`
	Review     string     `json:"review"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

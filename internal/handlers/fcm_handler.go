package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/messaging"

	"lokalBack/internal/models"
)

type FCMHandler struct {
	Client *messaging.Client
	DB     *sql.DB
}

func NewFCMHandler(client *messaging.Client, db *sql.DB) *FCMHandler {
	return &FCMHandler{Client: client, DB: db}
}

// RegisterToken stores a device push token so new-deal notifications can
// reach it.
func (h *FCMHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VisitorID string `json:"visitor_id"`
		Token     string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	query := `INSERT INTO push_tokens (visitor_id, token, created_at) VALUES (?, ?, NOW())
	          ON DUPLICATE KEY UPDATE visitor_id = VALUES(visitor_id)`
	if _, err := h.DB.ExecContext(r.Context(), query, req.VisitorID, req.Token); err != nil {
		http.Error(w, "Failed to store token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// NotifyNewBusiness pushes a notification to every registered device when a
// listing goes live. Per-token failures are logged and skipped.
func (h *FCMHandler) NotifyNewBusiness(b models.Business) {
	if h.Client == nil || h.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := h.DB.QueryContext(ctx, `SELECT token FROM push_tokens`)
	if err != nil {
		log.Printf("fcm: load tokens: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			log.Printf("fcm: scan token: %v", err)
			continue
		}

		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "New on the directory",
				Body:  b.Name + " just joined. Check out their deals",
			},
			Data: map[string]string{
				"business_id": b.PublicID,
				"category":    b.Category,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}
		if _, err := h.Client.Send(ctx, message); err != nil {
			log.Printf("fcm: send to token failed: %v", err)
		}
	}
	if err := rows.Err(); err != nil {
		log.Printf("fcm: token rows: %v", err)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
	"lokalBack/internal/services"
)

type ClickHandler struct {
	Service *services.ClickService
}

func (h *ClickHandler) RecordWhatsAppClick(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	businessID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	var req struct {
		VisitorID string `json:"visitor_id"`
	}
	// The body is optional; anonymous clicks are still counted.
	_ = json.NewDecoder(r.Body).Decode(&req)

	click := models.WhatsAppClick{BusinessID: businessID, VisitorID: req.VisitorID}
	if err := h.Service.RecordWhatsAppClick(r.Context(), click); err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to record click", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ClickHandler) GetClickStats(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	businessID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	stats, err := h.Service.GetStats(r.Context(), businessID)
	if err != nil {
		http.Error(w, "Failed to load click stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

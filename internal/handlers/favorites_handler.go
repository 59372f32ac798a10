package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lokalBack/internal/models"
	"lokalBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

func (h *FavoriteHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	var fav models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if fav.VisitorID == "" || fav.BusinessID == 0 {
		http.Error(w, "visitor_id and business_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Service.AddToFavorites(r.Context(), fav); err != nil {
		if errors.Is(err, models.ErrAlreadyFavorite) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoriteHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	visitorID := r.URL.Query().Get(":visitor_id")
	businessID, err := strconv.Atoi(r.URL.Query().Get(":business_id"))
	if err != nil || visitorID == "" {
		http.Error(w, "Invalid visitor or business ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveFromFavorites(r.Context(), visitorID, businessID); err != nil {
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	visitorID := r.URL.Query().Get(":visitor_id")
	if visitorID == "" {
		http.Error(w, "Missing visitor ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ClearFavorites(r.Context(), visitorID); err != nil {
		http.Error(w, "Failed to clear favorites", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	visitorID := r.URL.Query().Get(":visitor_id")
	businessID, err := strconv.Atoi(r.URL.Query().Get(":business_id"))
	if err != nil || visitorID == "" {
		http.Error(w, "Invalid visitor or business ID", http.StatusBadRequest)
		return
	}

	liked, err := h.Service.IsFavorite(r.Context(), visitorID, businessID)
	if err != nil {
		http.Error(w, "Failed to check favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"is_favorite": liked})
}

func (h *FavoriteHandler) GetFavoritesByVisitor(w http.ResponseWriter, r *http.Request) {
	visitorID := r.URL.Query().Get(":visitor_id")
	if visitorID == "" {
		http.Error(w, "Missing visitor ID", http.StatusBadRequest)
		return
	}

	favs, err := h.Service.GetFavoritesByVisitor(r.Context(), visitorID)
	if err != nil {
		http.Error(w, "Failed to load favorites", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(favs)
}

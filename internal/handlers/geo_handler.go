package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lokalBack/internal/models"
	"lokalBack/internal/services"
)

type GeoHandler struct {
	Business *services.BusinessService
	Resolver *services.ResolverService
}

// StartResolve begins annotating the current snapshot with coordinates. The
// pass outlives the request, so it runs on a background context and is
// stopped via CancelResolve or shutdown.
func (h *GeoHandler) StartResolve(w http.ResponseWriter, r *http.Request) {
	if h.Business.Snapshot.Len() == 0 {
		if err := h.Business.RefreshSnapshot(r.Context()); err != nil {
			http.Error(w, "Failed to load businesses", http.StatusInternalServerError)
			return
		}
	}

	if err := h.Resolver.Start(context.Background(), h.Business.Snapshot.All()); err != nil {
		if errors.Is(err, services.ErrResolveRunning) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to start resolution", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(h.Resolver.Status())
}

func (h *GeoHandler) ResolveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Resolver.Status())
}

func (h *GeoHandler) CancelResolve(w http.ResponseWriter, r *http.Request) {
	h.Resolver.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

// ReportPosition accepts a browser geolocation result. A failure code is
// mapped to the warning-banner message; a successful reading is echoed back
// so the client can feed it into distance filters.
func (h *GeoHandler) ReportPosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
		ErrorCode string   `json:"error_code,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if req.ErrorCode != "" || req.Latitude == nil || req.Longitude == nil {
		json.NewEncoder(w).Encode(map[string]string{
			"message": models.PositionErrorMessage(req.ErrorCode),
		})
		return
	}

	json.NewEncoder(w).Encode(models.UserLocation{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
}

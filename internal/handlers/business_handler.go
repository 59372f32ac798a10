package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
	"lokalBack/internal/schedule"
	"lokalBack/internal/services"
	"lokalBack/utils"
)

type BusinessHandler struct {
	Service *services.BusinessService
	FCM     *FCMHandler
}

func (h *BusinessHandler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var business models.Business
	business.PublicID = uuid.NewString()
	business.Name = r.FormValue("name")
	business.Category = r.FormValue("category")
	business.BusinessType = r.FormValue("business_type")
	business.PriceTier = r.FormValue("price_tier")
	business.Description = r.FormValue("description")
	business.Services = r.FormValue("services")
	business.Address = r.FormValue("address")
	business.WhatsApp = r.FormValue("whatsapp")
	business.CreatedAt = time.Now()

	if latStr := r.FormValue("latitude"); latStr != "" {
		if lat, err := strconv.ParseFloat(latStr, 64); err == nil {
			business.Latitude = &lat
		}
	}
	if lonStr := r.FormValue("longitude"); lonStr != "" {
		if lon, err := strconv.ParseFloat(lonStr, 64); err == nil {
			business.Longitude = &lon
		}
	}

	if scheduleJSON := r.FormValue("schedule"); scheduleJSON != "" {
		var weekly schedule.Weekly
		if err := json.Unmarshal([]byte(scheduleJSON), &weekly); err != nil {
			http.Error(w, "Invalid schedule JSON", http.StatusBadRequest)
			return
		}
		business.Schedule = weekly
	}

	files := r.MultipartForm.File["images"]
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			http.Error(w, "Failed to open file", http.StatusInternalServerError)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), fileHeader.Filename)
		url, err := utils.UploadFileToS3(data, filename, "businesses", fileHeader.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, "Failed to upload image", http.StatusInternalServerError)
			return
		}
		if i == 0 {
			business.ImagePath = url
		} else {
			business.Gallery = append(business.Gallery, url)
		}
	}

	created, err := h.Service.CreateBusiness(r.Context(), business)
	if err != nil {
		http.Error(w, "Failed to create business", http.StatusInternalServerError)
		return
	}

	if h.FCM != nil {
		go h.FCM.NotifyNewBusiness(created)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *BusinessHandler) GetBusinessByID(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing business ID", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		// Fall back to the opaque public identifier.
		business, err := h.Service.GetBusinessByPublicID(r.Context(), idStr)
		if err != nil {
			http.Error(w, "Business not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(business)
		return
	}

	business, err := h.Service.GetBusinessByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Business not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(business)
}

func (h *BusinessHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing business ID", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	var business models.Business
	if err := json.NewDecoder(r.Body).Decode(&business); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	business.ID = id

	updated, err := h.Service.UpdateBusiness(r.Context(), business)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *BusinessHandler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteBusiness(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BusinessHandler) ArchiveBusiness(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get(":id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Archive bool `json:"archive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ArchiveBusiness(r.Context(), id, req.Archive); err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SearchBusinesses runs the filter/sort/page pipeline. A zero-result page is
// a normal response, not an error.
func (h *BusinessHandler) SearchBusinesses(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	resp, err := h.Service.Search(r.Context(), req)
	if err != nil {
		http.Error(w, "Failed to load businesses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

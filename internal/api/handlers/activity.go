package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nat/todo-api/internal/api/middleware"
	"github.com/nat/todo-api/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type ActivityRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=500"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

type ActivityIDResponse struct {
	ID uint `json:"id"`
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Name, description and deadline are required", http.StatusBadRequest)
		return
	}

	activity, err := h.activityService.Create(r.Context(), userID, service.ActivityInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		log.Printf("ERROR [ActivityHandler.Create] creating activity for user %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ActivityIDResponse{ID: activity.ID})
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	activities, err := h.activityService.List(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [ActivityHandler.List] listing activities for user %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(activities) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseActivityID(r)
	if err != nil {
		http.Error(w, "Invalid activity ID", http.StatusBadRequest)
		return
	}

	activity, err := h.activityService.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ActivityHandler.Get] fetching activity %d for user %d: %v", id, userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activity)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseActivityID(r)
	if err != nil {
		http.Error(w, "Invalid activity ID", http.StatusBadRequest)
		return
	}

	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Name, description and deadline are required", http.StatusBadRequest)
		return
	}

	err = h.activityService.Update(r.Context(), userID, id, service.ActivityInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ActivityHandler.Update] updating activity %d for user %d: %v", id, userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ActivityHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseActivityID(r)
	if err != nil {
		http.Error(w, "Invalid activity ID", http.StatusBadRequest)
		return
	}

	if err := h.activityService.ToggleConfirm(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ActivityHandler.Confirm] toggling activity %d for user %d: %v", id, userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseActivityID(r)
	if err != nil {
		http.Error(w, "Invalid activity ID", http.StatusBadRequest)
		return
	}

	if err := h.activityService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [ActivityHandler.Delete] deleting activity %d for user %d: %v", id, userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func parseActivityID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

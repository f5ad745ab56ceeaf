package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nat/todo-api/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type SignUpRequest struct {
	NationalID string `json:"nationalId" validate:"required,len=13,numeric"`
	Password   string `json:"password" validate:"required"`
	Title      string `json:"title" validate:"required,max=100"`
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
}

type SignUpResponse struct {
	ID uint `json:"id"`
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "National ID, password, title, first name and last name are required", http.StatusBadRequest)
		return
	}

	user, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		NationalID: req.NationalID,
		Password:   req.Password,
		Title:      req.Title,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrNationalIDExists) {
			http.Error(w, "User with this national ID already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR [UserHandler.SignUp] creating user: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SignUpResponse{ID: user.ID})
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [UserHandler.GetByID] fetching user %d: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

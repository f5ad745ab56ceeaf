package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nat/todo-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	NationalID string `json:"nationalId" validate:"required,len=13,numeric"`
	Password   string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST /tokens: verifies the caller's credentials
// and returns a fresh bearer token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "National ID and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.authService.Login(r.Context(), req.NationalID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, "Invalid national ID or password", http.StatusUnauthorized)
		default:
			log.Printf("ERROR [AuthHandler.IssueToken] login failed for national id ending %s: %v", tail(req.NationalID), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{Token: token})
}

// tail keeps logs diagnosable without writing a full national id.
func tail(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

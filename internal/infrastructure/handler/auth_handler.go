// Package handler internal/infrastructure/handler/auth_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finance-tracker/internal/application/service"
	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/finbook/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	service *service.AuthService
	logger  logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService, log logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AuthHandler{
		service: service,
		logger:  log,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if req.Name == "" || req.Password == "" {
		sendErrorResponse(w, h.logger, "Name and password are required",
			"Both 'name' and 'password' must be non-empty", http.StatusBadRequest, requestID)
		return
	}

	_, err := h.service.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicateUser):
			h.logger.Warn("Duplicate registration", map[string]interface{}{
				"request_id": requestID,
				"name":       req.Name,
			})
			sendErrorResponse(w, h.logger, "User already exists",
				"A user with this name is already registered", http.StatusBadRequest, requestID)
		case errors.Is(err, entity.ErrValidation):
			sendErrorResponse(w, h.logger, "Invalid registration data",
				err.Error(), http.StatusBadRequest, requestID)
		default:
			h.logger.Error("Unexpected error in register", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Error registering user",
				"An unexpected error occurred while registering the user",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(MessageResponse{Message: "User registered successfully"})
}

// Login handles user authentication. On success the session token is set as
// an http-only cookie and echoed in the response body. The cookie carries no
// expiry attribute of its own; the token's embedded expiry governs validity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	token, err := h.service.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			h.logger.Warn("Login rejected", map[string]interface{}{
				"request_id": requestID,
				"name":       req.Name,
			})
			sendErrorResponse(w, h.logger, "Invalid credentials",
				"The name or password is incorrect", http.StatusBadRequest, requestID)
		} else {
			h.logger.Error("Unexpected error in login", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Error logging in",
				"An unexpected error occurred while logging in",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Message: "Login successful", Token: token})
}

// RegisterRoutes registers the auth handler routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	h.logger.Info("Auth routes registered", map[string]interface{}{
		"routes": []string{
			"POST /auth/register",
			"POST /auth/login",
		},
	})
}

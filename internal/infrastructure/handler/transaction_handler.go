package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/finbook/finance-tracker/internal/application/service"
	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/finbook/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD date string, wrapping failures in
// entity.ErrInvalidDate
func parseDate(v string) (time.Time, error) {
	date, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", entity.ErrInvalidDate, v)
	}
	return date, nil
}

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	userID := middleware.GetUserID(r.Context())

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	tx := &entity.Transaction{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			h.logger.Warn("Invalid date format", map[string]interface{}{
				"request_id": requestID,
				"date":       req.Date,
			})
			sendErrorResponse(w, h.logger, "Invalid date format",
				"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		tx.Date = date
	}

	created, err := h.service.Create(r.Context(), userID, tx)
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			h.logger.Warn("Transaction validation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Invalid transaction",
				err.Error(), http.StatusBadRequest, requestID)
		} else {
			h.logger.Error("Unexpected error in create transaction", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while creating the transaction",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	h.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         created.ID,
		"user_id":    userID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTransactionResponse(created))
}

// ListTransactions returns all transactions across all owners, paginated.
// A valid session is the only requirement.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page, limit := parsePagination(r)

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("Unexpected error in list transactions", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while listing transactions",
			http.StatusInternalServerError, requestID)
		return
	}

	writeTransactionPage(w, result)
}

// ListMyTransactions returns the caller's own transactions, paginated
func (h *TransactionHandler) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	userID := middleware.GetUserID(r.Context())
	page, limit := parsePagination(r)

	result, err := h.service.ListByOwner(r.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("Unexpected error in list my transactions", map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while listing transactions",
			http.StatusInternalServerError, requestID)
		return
	}

	writeTransactionPage(w, result)
}

// GetTransaction handles retrieving a transaction by ID. Records owned by
// other users are reported as not found.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	userID := middleware.GetUserID(r.Context())

	vars := mux.Vars(r)
	id := vars["id"]

	tx, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			h.logger.Warn("Transaction not found", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
			})
			sendErrorResponse(w, h.logger, "Transaction not found",
				"The requested transaction could not be found", http.StatusNotFound, requestID)
		} else {
			h.logger.Error("Unexpected error in get transaction", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while retrieving the transaction",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTransactionResponse(tx))
}

// UpdateTransaction merges the supplied fields into the record looked up by id
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	id := vars["id"]

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	update := service.TransactionUpdate{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			sendErrorResponse(w, h.logger, "Invalid date format",
				"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		update.Date = &date
	}

	_, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			sendErrorResponse(w, h.logger, "Transaction not found",
				"The requested transaction could not be found", http.StatusNotFound, requestID)
		case errors.Is(err, entity.ErrValidation):
			sendErrorResponse(w, h.logger, "Invalid transaction",
				err.Error(), http.StatusBadRequest, requestID)
		default:
			h.logger.Error("Unexpected error in update transaction", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while updating the transaction",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	h.logger.Info("Transaction updated", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{Message: "Updated transaction successfully"})
}

// DeleteTransaction removes the record looked up by id
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	id := vars["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErrorResponse(w, h.logger, "Transaction not found",
				"The requested transaction could not be found", http.StatusNotFound, requestID)
		} else {
			h.logger.Error("Unexpected error in delete transaction", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while deleting the transaction",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	h.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{Message: "Transaction deleted successfully"})
}

// RegisterRoutes registers the transaction handler routes. Fixed paths must
// already be registered on the router before this is called so they are not
// shadowed by the {id} routes.
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/", h.CreateTransaction).Methods("POST")
	router.HandleFunc("", h.ListTransactions).Methods("GET")
	router.HandleFunc("/", h.ListTransactions).Methods("GET")
	router.HandleFunc("/my", h.ListMyTransactions).Methods("GET")
	router.HandleFunc("/{id}", h.GetTransaction).Methods("GET")
	router.HandleFunc("/{id}", h.UpdateTransaction).Methods("PUT")
	router.HandleFunc("/{id}", h.DeleteTransaction).Methods("DELETE")

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"GET /transactions/my",
			"GET /transactions/{id}",
			"PUT /transactions/{id}",
			"DELETE /transactions/{id}",
		},
	})
}

// parsePagination reads page and limit query parameters, falling back to the
// defaults on missing or unparseable values
func parsePagination(r *http.Request) (page, limit int) {
	page = service.DefaultPage
	limit = service.DefaultLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return page, limit
}

func toTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		User:        tx.UserID,
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        tx.Date.Format(dateLayout),
		Description: tx.Description,
	}
}

func writeTransactionPage(w http.ResponseWriter, page *service.TransactionPage) {
	resp := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(page.Transactions)),
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
	}
	for _, tx := range page.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}

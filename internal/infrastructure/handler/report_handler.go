// Package handler internal/infrastructure/handler/report_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finbook/finance-tracker/internal/application/service"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/finbook/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ReportHandler handles HTTP requests for summary and month-wise reports
type ReportHandler struct {
	service *service.ReportService
	logger  logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService, log logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReportHandler{
		service: service,
		logger:  log,
	}
}

// GetSummary computes income/expense totals over an optional date range and
// category filter. Both dates are inclusive; the end date covers its whole
// day.
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var start, end *time.Time

	if v := r.URL.Query().Get("startDate"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			h.logger.Warn("Invalid start date", map[string]interface{}{
				"request_id": requestID,
				"startDate":  v,
			})
			sendErrorResponse(w, h.logger, "Invalid start date format",
				"startDate must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		start = &parsed
	}

	if v := r.URL.Query().Get("endDate"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			h.logger.Warn("Invalid end date", map[string]interface{}{
				"request_id": requestID,
				"endDate":    v,
			})
			sendErrorResponse(w, h.logger, "Invalid end date format",
				"endDate must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		// Include the entire end day
		endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &endOfDay
	}

	category := r.URL.Query().Get("category")

	summary, err := h.service.Summary(r.Context(), start, end, category)
	if err != nil {
		h.logger.Error("Unexpected error in summary", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while computing the summary",
			http.StatusInternalServerError, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SummaryResponse{
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		Balance:       summary.Balance,
	})
}

// GetMonthWiseReport returns per-month, per-category totals over all
// transactions, sorted ascending by month number
func (h *ReportHandler) GetMonthWiseReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	groups, err := h.service.MonthWiseReport(r.Context())
	if err != nil {
		h.logger.Error("Unexpected error in month-wise report", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while generating the report",
			http.StatusInternalServerError, requestID)
		return
	}

	resp := make([]MonthCategoryTotalResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, MonthCategoryTotalResponse{
			Month:       g.Month,
			Category:    g.Category,
			TotalAmount: g.TotalAmount,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the report handler routes. These fixed paths must
// be registered before the transaction {id} routes.
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/summary", h.GetSummary).Methods("GET")
	router.HandleFunc("/month-wise-report", h.GetMonthWiseReport).Methods("GET")

	h.logger.Info("Report routes registered", map[string]interface{}{
		"routes": []string{
			"GET /transactions/summary",
			"GET /transactions/month-wise-report",
		},
	})
}

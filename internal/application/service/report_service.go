// Package service internal/application/service/report_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/domain/repository"
	"github.com/finbook/finance-tracker/internal/infrastructure/cache"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/finbook/finance-tracker/internal/infrastructure/middleware"
)

// ReportService computes aggregations over the transaction set. Both reports
// aggregate across all owners; like List, they require only a valid session.
type ReportService struct {
	repo   repository.TransactionRepository
	cache  *cache.SummaryCache
	logger logger.Logger
}

// NewReportService creates a new report service. The cache may be nil.
func NewReportService(repo repository.TransactionRepository, summaryCache *cache.SummaryCache, log logger.Logger) *ReportService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReportService{
		repo:   repo,
		cache:  summaryCache,
		logger: log,
	}
}

// Summary computes income/expense totals over transactions matching the
// optional date range and category filter. Both bounds are inclusive; nil
// bounds and an empty category match everything. An empty result set yields
// all zeros.
func (s *ReportService) Summary(ctx context.Context, start, end *time.Time, category string) (*entity.Summary, error) {
	requestID := middleware.GetRequestID(ctx)

	if s.cache != nil {
		if cached := s.cache.Get(start, end, category); cached != nil {
			s.logger.Debug("Summary served from cache", map[string]interface{}{
				"request_id": requestID,
			})
			return cached, nil
		}
	}

	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load transactions for summary", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := &entity.Summary{}
	for _, tx := range txs {
		if start != nil && tx.Date.Before(*start) {
			continue
		}
		if end != nil && tx.Date.After(*end) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}

		switch tx.Type {
		case entity.TypeIncome:
			summary.TotalIncome += tx.Amount
		case entity.TypeExpense:
			summary.TotalExpenses += tx.Amount
		}
	}

	summary.TotalIncome = roundCents(summary.TotalIncome)
	summary.TotalExpenses = roundCents(summary.TotalExpenses)
	summary.Balance = roundCents(summary.TotalIncome - summary.TotalExpenses)

	if s.cache != nil {
		s.cache.Put(summary, start, end, category)
	}

	s.logger.Info("Summary computed", map[string]interface{}{
		"request_id":     requestID,
		"total_income":   summary.TotalIncome,
		"total_expenses": summary.TotalExpenses,
		"balance":        summary.Balance,
	})

	return summary, nil
}

// MonthWiseReport groups all transactions by (calendar month number,
// category), sums amounts per group, and returns groups sorted ascending by
// month number. Within a month, groups keep the order in which they were
// first encountered.
func (s *ReportService) MonthWiseReport(ctx context.Context) ([]entity.MonthCategoryTotal, error) {
	requestID := middleware.GetRequestID(ctx)

	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load transactions for month-wise report", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	type groupKey struct {
		month    int
		category string
	}

	index := make(map[groupKey]int)
	groups := make([]entity.MonthCategoryTotal, 0)

	for _, tx := range txs {
		key := groupKey{month: int(tx.Date.Month()), category: tx.Category}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, entity.MonthCategoryTotal{
				Month:    key.month,
				Category: key.category,
			})
		}
		groups[i].TotalAmount += tx.Amount
	}

	for i := range groups {
		groups[i].TotalAmount = roundCents(groups[i].TotalAmount)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Month < groups[j].Month
	})

	s.logger.Info("Month-wise report computed", map[string]interface{}{
		"request_id": requestID,
		"groups":     len(groups),
	})

	return groups, nil
}

// roundCents rounds a monetary amount to the nearest cent
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

package service

import (
	"context"
	"fmt"

	"fopassistant/internal/model"
	"fopassistant/internal/repository"
)

type SummaryRequest struct {
	UserID  string `form:"user_id" binding:"required"`
	EndDate string `form:"end_date"` // YYYY-MM-DD, inclusive
}

type PeriodBreakdownRequest struct {
	UserID    string `form:"user_id" binding:"required"`
	GroupBy   string `form:"group_by"` // month | quarter | year, default month
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

type PeriodBreakdownResponse struct {
	GroupBy   string               `json:"group_by"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Periods   []model.PeriodTotals `json:"periods"`
}

type StatisticsService interface {
	GetSummary(ctx context.Context, req SummaryRequest) (model.LedgerSummary, error)
	GetPeriodBreakdown(ctx context.Context, req PeriodBreakdownRequest) (PeriodBreakdownResponse, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
}

func NewStatisticsService(statsRepo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{statsRepo: statsRepo}
}

// GetSummary totals the whole ledger, optionally up to EndDate.
func (s *statisticsService) GetSummary(ctx context.Context, req SummaryRequest) (model.LedgerSummary, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return model.LedgerSummary{}, err
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return model.LedgerSummary{}, err
	}

	summary, err := s.statsRepo.Summary(ctx, uid, endDate)
	if err != nil {
		return model.LedgerSummary{}, fmt.Errorf("failed to build summary: %w", err)
	}
	summary.TotalIncome = summary.TotalIncome.Round(2)
	summary.TotalExpense = summary.TotalExpense.Round(2)
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

func (s *statisticsService) GetPeriodBreakdown(ctx context.Context, req PeriodBreakdownRequest) (PeriodBreakdownResponse, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return PeriodBreakdownResponse{}, err
	}
	groupBy := model.PeriodMonth
	if req.GroupBy != "" {
		groupBy = model.ReportingPeriod(req.GroupBy)
		if !groupBy.Valid() {
			return PeriodBreakdownResponse{}, malformed("group_by must be month, quarter or year")
		}
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return PeriodBreakdownResponse{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return PeriodBreakdownResponse{}, err
	}
	if end.Before(start) {
		return PeriodBreakdownResponse{}, malformed("end_date must not be before start_date")
	}

	rows, err := s.statsRepo.PeriodTotals(ctx, uid, string(groupBy), start, end)
	if err != nil {
		return PeriodBreakdownResponse{}, fmt.Errorf("failed to build period breakdown: %w", err)
	}
	if rows == nil {
		rows = []model.PeriodTotals{}
	}

	return PeriodBreakdownResponse{
		GroupBy:   string(groupBy),
		StartDate: start.Format(model.DateLayout),
		EndDate:   end.Format(model.DateLayout),
		Periods:   rows,
	}, nil
}

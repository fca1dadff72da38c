package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fopassistant/internal/mocks"
	"fopassistant/internal/model"
	"fopassistant/internal/service"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestGetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	statsRepo := mocks.NewMockStatisticsRepository(ctrl)
	statsRepo.EXPECT().Summary(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, endDate *time.Time) (model.LedgerSummary, error) {
			if endDate == nil || !endDate.Equal(jan15) {
				t.Errorf("unexpected end date %v", endDate)
			}
			return model.LedgerSummary{TotalIncome: dec("1000.005"), TotalExpense: dec("250.10"), MonthsCount: 2}, nil
		})

	res, err := service.NewStatisticsService(statsRepo).GetSummary(context.Background(), service.SummaryRequest{
		UserID: userID.String(), EndDate: "2025-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TotalIncome.Equal(dec("1000.01")) || !res.Balance.Equal(dec("749.91")) || res.MonthsCount != 2 {
		t.Errorf("unexpected summary %+v", res)
	}
}

func TestGetPeriodBreakdown(t *testing.T) {
	t.Run("defaults to month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		statsRepo := mocks.NewMockStatisticsRepository(ctrl)
		statsRepo.EXPECT().PeriodTotals(gomock.Any(), userID, "month", gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := service.NewStatisticsService(statsRepo).GetPeriodBreakdown(context.Background(), service.PeriodBreakdownRequest{
			UserID: userID.String(), StartDate: "2025-01-01", EndDate: "2025-03-31",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.GroupBy != "month" || res.Periods == nil || len(res.Periods) != 0 {
			t.Errorf("unexpected response %+v", res)
		}
	})

	tests := []struct {
		name string
		req  service.PeriodBreakdownRequest
	}{
		{"unknown grouping", service.PeriodBreakdownRequest{UserID: userID.String(), GroupBy: "week", StartDate: "2025-01-01", EndDate: "2025-02-01"}},
		{"reversed range", service.PeriodBreakdownRequest{UserID: userID.String(), StartDate: "2025-02-01", EndDate: "2025-01-01"}},
		{"bad date", service.PeriodBreakdownRequest{UserID: userID.String(), StartDate: "01.02.2025", EndDate: "2025-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			statsRepo := mocks.NewMockStatisticsRepository(ctrl)
			_, err := service.NewStatisticsService(statsRepo).GetPeriodBreakdown(context.Background(), tt.req)
			if !errors.Is(err, service.ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

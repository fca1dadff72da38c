package repository

import (
	"context"
	"fmt"
	"time"

	"fopassistant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	Summary(ctx context.Context, userID uuid.UUID, endDate *time.Time) (model.LedgerSummary, error)
	PeriodTotals(ctx context.Context, userID uuid.UUID, groupBy string, start, end time.Time) ([]model.PeriodTotals, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// Summary sums local amounts. MonthsCount is the number of distinct calendar
// months holding at least one transaction.
func (r *statisticsRepository) Summary(ctx context.Context, userID uuid.UUID, endDate *time.Time) (model.LedgerSummary, error) {
	var summary model.LedgerSummary

	query := GetDB(ctx, r.db).Table("transactions").
		Select(`COALESCE(SUM(CASE WHEN transaction_type = ? THEN transaction_amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN transaction_amount ELSE 0 END), 0) AS total_expense,
			COUNT(DISTINCT TO_CHAR(transaction_date, 'YYYY-MM')) AS months_count`,
			model.TransactionIncome, model.TransactionExpense).
		Where("user_id = ?", userID)
	if endDate != nil {
		query = query.Where("transaction_date <= ?", *endDate)
	}

	if err := query.Scan(&summary).Error; err != nil {
		return model.LedgerSummary{}, fmt.Errorf("failed to query ledger summary: %w", err)
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// PeriodTotals buckets income and expense by DATE_TRUNC unit (month, quarter, year).
func (r *statisticsRepository) PeriodTotals(ctx context.Context, userID uuid.UUID, groupBy string, start, end time.Time) ([]model.PeriodTotals, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($1, t.transaction_date), 'YYYY-MM-DD') AS period,
			COALESCE(SUM(CASE WHEN t.transaction_type = $5 THEN t.transaction_amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.transaction_type = $6 THEN t.transaction_amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS tx_count
		FROM transactions t
		WHERE t.user_id = $2
		  AND t.transaction_date >= $3::date
		  AND t.transaction_date <= $4::date
		GROUP BY DATE_TRUNC($1, t.transaction_date)
		ORDER BY period
	`

	var rows []model.PeriodTotals
	if err := GetDB(ctx, r.db).Raw(query,
		groupBy, userID, start.Format(model.DateLayout), end.Format(model.DateLayout),
		model.TransactionIncome, model.TransactionExpense,
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query period totals: %w", err)
	}

	return rows, nil
}

package model

import "github.com/shopspring/decimal"

// LedgerSummary aggregates local-currency totals of a user's transactions.
type LedgerSummary struct {
	TotalIncome  decimal.Decimal `gorm:"column:total_income" json:"totalIncome"`
	TotalExpense decimal.Decimal `gorm:"column:total_expense" json:"totalExpense"`
	Balance      decimal.Decimal `gorm:"-" json:"balance"`
	MonthsCount  int             `gorm:"column:months_count" json:"monthsCount"`
}

// PeriodTotals is one bucket of the income/expense breakdown.
type PeriodTotals struct {
	Period       string          `gorm:"column:period" json:"period"` // bucket start, YYYY-MM-DD
	TotalIncome  decimal.Decimal `gorm:"column:total_income" json:"total_income"`
	TotalExpense decimal.Decimal `gorm:"column:total_expense" json:"total_expense"`
	Count        int             `gorm:"column:tx_count" json:"count"`
}

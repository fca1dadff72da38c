package service

import (
	"context"
	"strconv"

	"fopassistant/internal/logger"
	"fopassistant/internal/model"
	"fopassistant/internal/repository"
	"fopassistant/internal/tax"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type TaxCalculationRequest struct {
	UserID        string `form:"user_id" binding:"required"`
	AnnualIncome  string `form:"annual_income"`  // Decimal string, default 0
	MonthlyIncome string `form:"monthly_income"` // Decimal string, default 0
	Period        string `form:"period"`         // month | quarter | year, default month
}

type TaxCalculationResponse struct {
	Taxes    tax.Calculation     `json:"taxes"`
	Warnings []tax.Warning       `json:"warnings"`
	Calendar []tax.CalendarEntry `json:"calendar"`
}

// --- Interface ---

type TaxService interface {
	Calculate(ctx context.Context, req TaxCalculationRequest) (TaxCalculationResponse, error)
	Calendar(group string) ([]tax.CalendarEntry, error)
}

type taxService struct {
	settingsRepo repository.SettingsRepository
}

func NewTaxService(settingsRepo repository.SettingsRepository) TaxService {
	return &taxService{settingsRepo: settingsRepo}
}

// --- Implementation ---

// Calculate validates the stored settings against annual income, then computes the
// taxes on monthly income (or a twelfth of annual income when no monthly figure is given).
func (s *taxService) Calculate(ctx context.Context, req TaxCalculationRequest) (TaxCalculationResponse, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return TaxCalculationResponse{}, err
	}
	annual, err := parseMoney("annual_income", req.AnnualIncome)
	if err != nil {
		return TaxCalculationResponse{}, err
	}
	monthly, err := parseMoney("monthly_income", req.MonthlyIncome)
	if err != nil {
		return TaxCalculationResponse{}, err
	}
	period := model.PeriodMonth
	if req.Period != "" {
		period = model.ReportingPeriod(req.Period)
		if !period.Valid() {
			return TaxCalculationResponse{}, malformed("period must be month, quarter or year")
		}
	}

	settings, err := s.settingsRepo.FindByUserID(ctx, uid)
	if err != nil {
		return TaxCalculationResponse{}, notFoundOr(err, "tax settings")
	}

	if violations := tax.VerifyGroupRestrictions(*settings, annual); len(violations) > 0 {
		logger.L.Info("Tax calculation rejected", "user_id", uid, "violations", violations)
		return TaxCalculationResponse{}, &ViolationError{Violations: violations}
	}

	income := monthly
	if !monthly.IsPositive() {
		income = annual.Div(decimal.NewFromInt(12))
	}

	taxes, err := tax.Calculate(*settings, income, period)
	if err != nil {
		return TaxCalculationResponse{}, malformed("%v", err)
	}

	return TaxCalculationResponse{
		Taxes:    taxes,
		Warnings: tax.Warnings(*settings, annual),
		Calendar: tax.PaymentCalendar(),
	}, nil
}

// Calendar returns every deadline, or only those of one group when group is set.
func (s *taxService) Calendar(group string) ([]tax.CalendarEntry, error) {
	if group == "" {
		return tax.PaymentCalendar(), nil
	}
	n, err := strconv.Atoi(group)
	if err != nil || !model.FopGroup(n).Valid() {
		return nil, malformed("group must be 1, 2, 3 or 4")
	}
	return tax.CalendarFor(model.FopGroup(n)), nil
}

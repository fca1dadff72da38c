package service

import (
	"regexp"
	"strings"
	"time"

	"fopassistant/internal/currency"
	"fopassistant/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, malformed("invalid %s", field)
	}
	return id, nil
}

func parseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := parseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(model.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, malformed("%s must be in YYYY-MM-DD format", field)
	}
	return date, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	date, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// parseCurrency upper-cases the code; blank means the local currency.
func parseCurrency(value string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return model.LocalCurrency, nil
	}
	if !currencyCodePattern.MatchString(code) {
		return "", malformed("currency must be a 3-letter code")
	}
	return code, nil
}

// validateAmount requires a positive value that fits the amount column.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return malformed("amount must be greater than 0")
	}
	if !amount.Equal(amount.Round(model.AmountScale)) {
		return malformed("amount must have at most %d decimal places", model.AmountScale)
	}
	if !amount.LessThan(model.MaxAmount) {
		return malformed("amount must be less than %s", model.MaxAmount)
	}
	return nil
}

func validateManualRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return malformed("manual_rate must not be negative")
	}
	if !rate.Equal(rate.Round(model.RateScale)) {
		return malformed("manual_rate must have at most %d decimal places", model.RateScale)
	}
	if !rate.LessThan(model.MaxRate) {
		return malformed("manual_rate must be less than %s", model.MaxRate)
	}
	return nil
}

// validateLocalAmount rejects conversions whose local amount overflows its column.
func validateLocalAmount(amounts currency.Amounts) error {
	if !amounts.AmountLocal.LessThan(model.MaxAmount) {
		return malformed("amount in %s must be less than %s", model.LocalCurrency, model.MaxAmount)
	}
	return nil
}

func validatePercent(field string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return malformed("%s must be between 0 and 100", field)
	}
	return nil
}

func validateNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return malformed("%s must not be negative", field)
	}
	return nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, malformed("%s must be a number", field)
	}
	if d.IsNegative() {
		return decimal.Zero, malformed("%s must not be negative", field)
	}
	return d, nil
}

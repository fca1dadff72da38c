package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fopassistant/internal/logger"
	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
)

// ErrRateUnavailable means no usable rate could be obtained; callers must ask
// for a manual rate instead of substituting a default.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Resolver converts a currency and date into a rate to the local currency.
// Every call for a foreign currency goes to the provider: nothing is cached or retried.
type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

func (r *Resolver) Resolve(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	if currencyCode == model.LocalCurrency {
		return decimal.NewFromInt(1), nil
	}

	dateStr := date.Format(nbuDateLayout)
	records, err := r.provider.FetchRates(ctx, currencyCode, date)
	if err != nil {
		logger.L.Warn("Exchange rate lookup failed", "currency", currencyCode, "date", dateStr, "error", err)
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	if len(records) == 0 {
		logger.L.Warn("Exchange rate not found", "currency", currencyCode, "date", dateStr)
		return decimal.Zero, fmt.Errorf("%w: no rate for %s on %s", ErrRateUnavailable, currencyCode, dateStr)
	}

	rate := records[0].Rate
	if rate.IsZero() {
		logger.L.Warn("Exchange rate is zero", "currency", currencyCode, "date", dateStr)
		return decimal.Zero, fmt.Errorf("%w: zero rate for %s on %s", ErrRateUnavailable, currencyCode, dateStr)
	}
	return rate, nil
}

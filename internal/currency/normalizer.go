package currency

import (
	"context"
	"fmt"
	"time"

	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=../mocks/mock_currency.go -package=mocks fopassistant/internal/currency RateResolver

// RateResolver returns the rate converting one unit of currencyCode into the local currency on date.
type RateResolver interface {
	Resolve(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error)
}

// Amounts are the currency fields of a ledger entry.
type Amounts struct {
	AmountLocal    decimal.Decimal
	AmountOriginal *decimal.Decimal // nil for local currency entries
	ExchangeRate   decimal.Decimal
	CurrencyCode   string
	Date           time.Time
}

func (a Amounts) IsForeign() bool {
	return a.CurrencyCode != model.LocalCurrency
}

// Entered returns the amount as the user typed it, in CurrencyCode.
func (a Amounts) Entered() decimal.Decimal {
	if a.AmountOriginal != nil {
		return *a.AmountOriginal
	}
	return a.AmountLocal
}

// FromTransaction extracts the currency fields of a stored transaction.
func FromTransaction(tx *model.Transaction) Amounts {
	return Amounts{
		AmountLocal:    tx.Amount,
		AmountOriginal: tx.AmountOriginal,
		ExchangeRate:   tx.ExchangeRate,
		CurrencyCode:   tx.CurrencyCode,
		Date:           tx.Date,
	}
}

// Apply copies the amounts onto a transaction.
func (a Amounts) Apply(tx *model.Transaction) {
	tx.Amount = a.AmountLocal
	tx.AmountOriginal = a.AmountOriginal
	tx.ExchangeRate = a.ExchangeRate
	tx.CurrencyCode = a.CurrencyCode
	tx.Date = a.Date
	tx.IsForeignCurrency = a.IsForeign()
}

type CreateInput struct {
	Amount       decimal.Decimal
	CurrencyCode string
	Date         time.Time
	ManualRate   *decimal.Decimal
}

// PatchInput holds the financial fields of a partial edit. Only fields whose key
// was present in the request are Set; a present null clears ManualRate.
type PatchInput struct {
	Amount       model.Optional[decimal.Decimal]
	CurrencyCode model.Optional[string]
	Date         model.Optional[time.Time]
	ManualRate   model.Optional[decimal.Decimal]
}

// Touched reports whether the edit mentions any field that feeds the local amount.
func (p PatchInput) Touched() bool {
	return p.Amount.Set || p.CurrencyCode.Set || p.Date.Set || p.ManualRate.Set
}

type PatchResult struct {
	Amounts
	Recalculated bool
	RateFetched  bool
}

// Normalizer derives the local amount and applied rate of ledger entries.
type Normalizer struct {
	resolver RateResolver
}

func NewNormalizer(resolver RateResolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

func (n *Normalizer) Create(ctx context.Context, in CreateInput) (Amounts, error) {
	if in.CurrencyCode == model.LocalCurrency {
		return localAmounts(in.Amount, in.Date), nil
	}

	var rate decimal.Decimal
	if in.ManualRate != nil && in.ManualRate.IsPositive() {
		rate = *in.ManualRate
	} else {
		fetched, err := n.resolver.Resolve(ctx, in.CurrencyCode, in.Date)
		if err != nil {
			return Amounts{}, fmt.Errorf("failed to resolve %s rate: %w", in.CurrencyCode, err)
		}
		rate = fetched
	}
	return foreignAmounts(in.Amount, in.CurrencyCode, in.Date, rate), nil
}

// Patch merges the edit into existing. An untouched edit returns existing unchanged.
// Rate precedence: a positive manual rate, then a fresh lookup when the manual rate
// was cleared or the currency or date changed, then the stored rate.
func (n *Normalizer) Patch(ctx context.Context, existing Amounts, in PatchInput) (PatchResult, error) {
	if !in.Touched() {
		return PatchResult{Amounts: existing}, nil
	}

	amount := existing.Entered()
	if in.Amount.Valid {
		amount = in.Amount.Value
	}
	code := existing.CurrencyCode
	if in.CurrencyCode.Valid {
		code = in.CurrencyCode.Value
	}
	date := existing.Date
	if in.Date.Valid {
		date = in.Date.Value
	}

	if code == model.LocalCurrency {
		return PatchResult{Amounts: localAmounts(amount, date), Recalculated: true}, nil
	}

	result := PatchResult{Recalculated: true}
	var rate decimal.Decimal
	switch {
	case in.ManualRate.Valid && in.ManualRate.Value.IsPositive():
		rate = in.ManualRate.Value
	case in.ManualRate.Set || code != existing.CurrencyCode || !sameDay(date, existing.Date):
		fetched, err := n.resolver.Resolve(ctx, code, date)
		if err != nil {
			return PatchResult{}, fmt.Errorf("failed to resolve %s rate: %w", code, err)
		}
		rate = fetched
		result.RateFetched = true
	default:
		rate = existing.ExchangeRate
	}
	result.Amounts = foreignAmounts(amount, code, date, rate)
	return result, nil
}

func localAmounts(amount decimal.Decimal, date time.Time) Amounts {
	return Amounts{
		AmountLocal:  amount,
		ExchangeRate: decimal.NewFromInt(1),
		CurrencyCode: model.LocalCurrency,
		Date:         date,
	}
}

// foreignAmounts derives the local amount from the rate as stored.
func foreignAmounts(amount decimal.Decimal, code string, date time.Time, rate decimal.Decimal) Amounts {
	original := amount
	rate = rate.Round(model.RateScale)
	return Amounts{
		AmountLocal:    amount.Mul(rate).Round(model.AmountScale),
		AmountOriginal: &original,
		ExchangeRate:   rate,
		CurrencyCode:   code,
		Date:           date,
	}
}

func sameDay(a, b time.Time) bool {
	return a.Format(model.DateLayout) == b.Format(model.DateLayout)
}

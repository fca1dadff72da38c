package currency_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fopassistant/internal/currency"
	"fopassistant/internal/exchange"
	"fopassistant/internal/mocks"
	"fopassistant/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	jan10 = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb01 = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertAmounts(t *testing.T, got currency.Amounts, local, rate string, original *decimal.Decimal, code string) {
	t.Helper()
	if !got.AmountLocal.Equal(dec(local)) {
		t.Errorf("local amount: expected %s, got %s", local, got.AmountLocal)
	}
	if !got.ExchangeRate.Equal(dec(rate)) {
		t.Errorf("exchange rate: expected %s, got %s", rate, got.ExchangeRate)
	}
	if got.CurrencyCode != code {
		t.Errorf("currency: expected %s, got %s", code, got.CurrencyCode)
	}
	switch {
	case original == nil && got.AmountOriginal != nil:
		t.Errorf("expected no original amount, got %s", got.AmountOriginal)
	case original != nil && got.AmountOriginal == nil:
		t.Errorf("expected original amount %s, got none", original)
	case original != nil && !got.AmountOriginal.Equal(*original):
		t.Errorf("original amount: expected %s, got %s", original, got.AmountOriginal)
	}
}

func usdEntry() currency.Amounts {
	return currency.Amounts{
		AmountLocal:    dec("4125.00"),
		AmountOriginal: decPtr("100"),
		ExchangeRate:   dec("41.25"),
		CurrencyCode:   "USD",
		Date:           jan10,
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		input    currency.CreateInput
		setup    func(r *mocks.MockRateResolverMockRecorder)
		local    string
		rate     string
		original *decimal.Decimal
	}{
		{
			name:  "local currency is rate neutral",
			input: currency.CreateInput{Amount: dec("1234.56"), CurrencyCode: "UAH", Date: jan10, ManualRate: decPtr("40")},
			local: "1234.56",
			rate:  "1",
		},
		{
			name:  "positive manual rate wins",
			input: currency.CreateInput{Amount: dec("100"), CurrencyCode: "USD", Date: jan10, ManualRate: decPtr("40.5")},
			local: "4050", rate: "40.5", original: decPtr("100"),
		},
		{
			name:  "zero manual rate falls back to lookup",
			input: currency.CreateInput{Amount: dec("10.01"), CurrencyCode: "EUR", Date: jan10, ManualRate: decPtr("0")},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "EUR", jan10).Return(dec("43.4567"), nil)
			},
			local: "435.00", rate: "43.4567", original: decPtr("10.01"),
		},
		{
			name:  "lookup without manual rate rounds half away from zero",
			input: currency.CreateInput{Amount: dec("0.5"), CurrencyCode: "USD", Date: jan10},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "USD", jan10).Return(dec("0.01"), nil)
			},
			local: "0.01", rate: "0.01", original: decPtr("0.5"),
		},
		{
			name:  "manual rate is rounded to the stored scale before conversion",
			input: currency.CreateInput{Amount: dec("1000000"), CurrencyCode: "USD", Date: jan10, ManualRate: decPtr("41.1234567")},
			local: "41123457.00", rate: "41.123457", original: decPtr("1000000"),
		},
		{
			name:  "looked up rate is rounded to the stored scale before conversion",
			input: currency.CreateInput{Amount: dec("1000000"), CurrencyCode: "EUR", Date: jan10},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "EUR", jan10).Return(dec("43.12345649"), nil)
			},
			local: "43123456.00", rate: "43.123456", original: decPtr("1000000"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mocks.NewMockRateResolver(ctrl)
			if tt.setup != nil {
				tt.setup(resolver.EXPECT())
			}

			got, err := currency.NewNormalizer(resolver).Create(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertAmounts(t, got, tt.local, tt.rate, tt.original, tt.input.CurrencyCode)
			if got.IsForeign() != (tt.input.CurrencyCode != model.LocalCurrency) {
				t.Errorf("foreign flag mismatch for %s", tt.input.CurrencyCode)
			}
		})
	}
}

func TestCreateFailsWhenRateUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockRateResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "USD", jan10).
		Return(decimal.Zero, fmt.Errorf("%w: timeout", exchange.ErrRateUnavailable))

	_, err := currency.NewNormalizer(resolver).Create(context.Background(), currency.CreateInput{
		Amount: dec("100"), CurrencyCode: "USD", Date: jan10,
	})
	if !errors.Is(err, exchange.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestPatchUntouchedKeepsAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockRateResolver(ctrl)

	existing := usdEntry()
	got, err := currency.NewNormalizer(resolver).Patch(context.Background(), existing, currency.PatchInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Recalculated {
		t.Fatal("expected no recalculation")
	}
	if got.AmountLocal.String() != existing.AmountLocal.String() ||
		got.ExchangeRate.String() != existing.ExchangeRate.String() ||
		got.CurrencyCode != existing.CurrencyCode ||
		got.AmountOriginal != existing.AmountOriginal {
		t.Fatalf("amounts changed: %+v", got.Amounts)
	}
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name     string
		existing currency.Amounts
		input    currency.PatchInput
		setup    func(r *mocks.MockRateResolverMockRecorder)
		code     string
		local    string
		rate     string
		original *decimal.Decimal
		fetched  bool
	}{
		{
			name:     "switch to local currency clears foreign amount",
			existing: usdEntry(),
			input:    currency.PatchInput{CurrencyCode: model.Some("UAH")},
			code:     "UAH", local: "100", rate: "1",
		},
		{
			name:     "amount only keeps stored rate",
			existing: usdEntry(),
			input:    currency.PatchInput{Amount: model.Some(dec("200"))},
			code:     "USD", local: "8250.00", rate: "41.25", original: decPtr("200"),
		},
		{
			name:     "date change refetches rate",
			existing: usdEntry(),
			input:    currency.PatchInput{Date: model.Some(feb01)},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "USD", feb01).Return(dec("42"), nil)
			},
			code: "USD", local: "4200", rate: "42", original: decPtr("100"), fetched: true,
		},
		{
			name:     "same day with different clock keeps stored rate",
			existing: usdEntry(),
			input:    currency.PatchInput{Date: model.Some(jan10.Add(15 * time.Hour))},
			code:     "USD", local: "4125.00", rate: "41.25", original: decPtr("100"),
		},
		{
			name:     "currency change refetches rate",
			existing: usdEntry(),
			input:    currency.PatchInput{CurrencyCode: model.Some("EUR")},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "EUR", jan10).Return(dec("44.1"), nil)
			},
			code: "EUR", local: "4410", rate: "44.1", original: decPtr("100"), fetched: true,
		},
		{
			name:     "cleared manual rate refetches rate",
			existing: usdEntry(),
			input:    currency.PatchInput{ManualRate: model.Null[decimal.Decimal]()},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "USD", jan10).Return(dec("41.3"), nil)
			},
			code: "USD", local: "4130", rate: "41.3", original: decPtr("100"), fetched: true,
		},
		{
			name:     "zero manual rate refetches rate",
			existing: usdEntry(),
			input:    currency.PatchInput{ManualRate: model.Some(decimal.Zero)},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "USD", jan10).Return(dec("41.3"), nil)
			},
			code: "USD", local: "4130", rate: "41.3", original: decPtr("100"), fetched: true,
		},
		{
			name:     "manual rate beats currency and date change",
			existing: usdEntry(),
			input: currency.PatchInput{
				CurrencyCode: model.Some("EUR"),
				Date:         model.Some(feb01),
				ManualRate:   model.Some(dec("45")),
			},
			code: "EUR", local: "4500", rate: "45", original: decPtr("100"),
		},
		{
			name: "local entry becomes foreign",
			existing: currency.Amounts{
				AmountLocal: dec("500"), ExchangeRate: dec("1"), CurrencyCode: "UAH", Date: jan10,
			},
			input: currency.PatchInput{CurrencyCode: model.Some("PLN")},
			setup: func(r *mocks.MockRateResolverMockRecorder) {
				r.Resolve(gomock.Any(), "PLN", jan10).Return(dec("10.333"), nil)
			},
			code: "PLN", local: "5166.50", rate: "10.333", original: decPtr("500"), fetched: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mocks.NewMockRateResolver(ctrl)
			if tt.setup != nil {
				tt.setup(resolver.EXPECT())
			}

			got, err := currency.NewNormalizer(resolver).Patch(context.Background(), tt.existing, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Recalculated {
				t.Fatal("expected recalculation")
			}
			if got.RateFetched != tt.fetched {
				t.Errorf("rate fetched: expected %v, got %v", tt.fetched, got.RateFetched)
			}
			assertAmounts(t, got.Amounts, tt.local, tt.rate, tt.original, tt.code)
		})
	}
}

func TestPatchFailsWhenRefetchUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockRateResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "USD", feb01).
		Return(decimal.Zero, fmt.Errorf("%w: empty result", exchange.ErrRateUnavailable))

	_, err := currency.NewNormalizer(resolver).Patch(context.Background(), usdEntry(), currency.PatchInput{
		Date: model.Some(feb01),
	})
	if !errors.Is(err, exchange.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestPatchIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockRateResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "EUR", feb01).Return(dec("44.75"), nil).Times(1)

	normalizer := currency.NewNormalizer(resolver)
	input := currency.PatchInput{
		Amount:       model.Some(dec("33.33")),
		CurrencyCode: model.Some("EUR"),
		Date:         model.Some(feb01),
	}

	first, err := normalizer.Patch(context.Background(), usdEntry(), input)
	if err != nil {
		t.Fatalf("first patch: %v", err)
	}
	second, err := normalizer.Patch(context.Background(), first.Amounts, input)
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}
	assertAmounts(t, second.Amounts, first.AmountLocal.String(), first.ExchangeRate.String(), first.AmountOriginal, "EUR")
	if second.RateFetched {
		t.Fatal("second application should reuse the stored rate")
	}
}

func TestAmountsRoundTripThroughTransaction(t *testing.T) {
	tx := &model.Transaction{}
	usdEntry().Apply(tx)
	if !tx.IsForeignCurrency || tx.CurrencyCode != "USD" || !tx.Amount.Equal(dec("4125")) {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	back := currency.FromTransaction(tx)
	assertAmounts(t, back, "4125", "41.25", decPtr("100"), "USD")
}

package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"fopassistant/internal/currency"
	"fopassistant/internal/exchange"
	"fopassistant/internal/mocks"
	"fopassistant/internal/model"
	"fopassistant/internal/repository"
	"fopassistant/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []service.LedgerEvent
}

func (p *recordingPublisher) Publish(_ uuid.UUID, event any) {
	p.events = append(p.events, event.(service.LedgerEvent))
}

type transactionFixture struct {
	txRepo    *mocks.MockTransactionRepository
	auditRepo *mocks.MockAuditRepository
	txManager *mocks.MockTransactionManager
	resolver  *mocks.MockRateResolver
	publisher *recordingPublisher
	svc       service.TransactionService
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &transactionFixture{
		txRepo:    mocks.NewMockTransactionRepository(ctrl),
		auditRepo: mocks.NewMockAuditRepository(ctrl),
		txManager: mocks.NewMockTransactionManager(ctrl),
		resolver:  mocks.NewMockRateResolver(ctrl),
		publisher: &recordingPublisher{},
	}
	f.svc = service.NewTransactionService(f.txRepo, f.auditRepo, f.txManager, currency.NewNormalizer(f.resolver), f.publisher)
	return f
}

// passThroughTx runs the callback directly, as a committed database transaction would.
func passThroughTx(m *mocks.MockTransactionManager) {
	m.EXPECT().RunInTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

var (
	userID = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e")
	txID   = uuid.MustParse("0a1b2c3d-4e5f-4a6b-9c7d-8e9f0a1b2c3d")
	jan15  = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func storedUSD() *model.Transaction {
	notes := "invoice 17"
	return &model.Transaction{
		ID:                txID,
		UserID:            userID,
		Type:              model.TransactionIncome,
		Amount:            dec("4125.00"),
		Date:              jan15,
		Notes:             &notes,
		IsForeignCurrency: true,
		CurrencyCode:      "USD",
		AmountOriginal:    decPtr("100.00"),
		ExchangeRate:      dec("41.25"),
	}
}

func patchRequest(t *testing.T, payload string) service.PatchTransactionRequest {
	t.Helper()
	var req service.PatchTransactionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("invalid payload %s: %v", payload, err)
	}
	return req
}

func TestCreateTransactionLocalCurrency(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	var created *model.Transaction
	f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *model.Transaction) error {
		created = tx
		return nil
	})
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry *model.AuditLog) error {
		if entry.Action != model.ActionCreateTransaction || entry.UserID != userID {
			t.Errorf("unexpected audit entry %+v", entry)
		}
		return nil
	})

	res, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionRequest{
		UserID: userID.String(),
		Type:   "income",
		Amount: dec("1234.56"),
		Date:   "2025-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.CurrencyCode != model.LocalCurrency || created.IsForeignCurrency {
		t.Errorf("expected local currency entry, got %+v", created)
	}
	if !created.Amount.Equal(dec("1234.56")) || !created.ExchangeRate.Equal(decimal.NewFromInt(1)) || created.AmountOriginal != nil {
		t.Errorf("unexpected amounts %+v", created)
	}
	if res.UsedRate != "1" || res.AmountUAH != "1234.56" {
		t.Errorf("unexpected response %+v", res)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != service.EventTransactionCreated {
		t.Errorf("expected one created event, got %+v", f.publisher.events)
	}
}

func TestCreateTransactionForeignCurrency(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	f.resolver.EXPECT().Resolve(gomock.Any(), "EUR", jan15).Return(dec("44.1234"), nil)
	f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionRequest{
		UserID:   userID.String(),
		Type:     "expense",
		Amount:   dec("19.99"),
		Currency: "eur",
		Date:     "2025-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transaction.CurrencyCode != "EUR" || res.AmountUAH != "882.03" || res.UsedRate != "44.1234" {
		t.Errorf("unexpected response %+v", res)
	}
	if res.Transaction.AmountOriginal == nil || *res.Transaction.AmountOriginal != "19.99" {
		t.Errorf("expected original amount 19.99, got %v", res.Transaction.AmountOriginal)
	}
}

func TestCreateTransactionRateUnavailableWritesNothing(t *testing.T) {
	f := newTransactionFixture(t)
	f.resolver.EXPECT().Resolve(gomock.Any(), "USD", jan15).
		Return(decimal.Zero, fmt.Errorf("%w: empty result", exchange.ErrRateUnavailable))
	f.txManager.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Times(0)
	f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionRequest{
		UserID:   userID.String(),
		Type:     "income",
		Amount:   dec("100"),
		Currency: "USD",
		Date:     "2025-01-15",
	})
	if !errors.Is(err, exchange.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("no event expected, got %+v", f.publisher.events)
	}
}

func TestCreateTransactionRejectsMalformedInput(t *testing.T) {
	valid := service.CreateTransactionRequest{
		UserID: userID.String(), Type: "income", Amount: dec("10"), Currency: "USD", Date: "2025-01-15",
	}
	tests := []struct {
		name   string
		mutate func(r *service.CreateTransactionRequest)
	}{
		{"zero amount", func(r *service.CreateTransactionRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *service.CreateTransactionRequest) { r.Amount = dec("-5") }},
		{"sub-cent amount", func(r *service.CreateTransactionRequest) { r.Amount = dec("1.005") }},
		{"bad currency", func(r *service.CreateTransactionRequest) { r.Currency = "US1" }},
		{"bad date", func(r *service.CreateTransactionRequest) { r.Date = "15.01.2025" }},
		{"bad type", func(r *service.CreateTransactionRequest) { r.Type = "transfer" }},
		{"bad user", func(r *service.CreateTransactionRequest) { r.UserID = "nope" }},
		{"negative manual rate", func(r *service.CreateTransactionRequest) { r.ManualRate = decPtr("-1") }},
		{"manual rate beyond six decimals", func(r *service.CreateTransactionRequest) { r.ManualRate = decPtr("41.1234567") }},
		{"manual rate beyond column range", func(r *service.CreateTransactionRequest) { r.ManualRate = decPtr("1000000000000") }},
		{"amount beyond column range", func(r *service.CreateTransactionRequest) { r.Amount = dec("10000000000000000") }},
		{"local amount beyond column range", func(r *service.CreateTransactionRequest) {
			r.Amount = dec("9999999999999999.99")
			r.ManualRate = decPtr("2")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransactionFixture(t)
			req := valid
			tt.mutate(&req)

			_, err := f.svc.CreateTransaction(context.Background(), req)
			if !errors.Is(err, service.ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestCreateTransactionStoresRateAtColumnScale(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	f.resolver.EXPECT().Resolve(gomock.Any(), "USD", jan15).Return(dec("41.1234567"), nil)
	f.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *model.Transaction) error {
			if !tx.ExchangeRate.Equal(tx.ExchangeRate.Round(model.RateScale)) {
				t.Errorf("rate %s exceeds the column scale", tx.ExchangeRate)
			}
			if !tx.Amount.Equal(tx.AmountOriginal.Mul(tx.ExchangeRate).Round(model.AmountScale)) {
				t.Errorf("local amount %s does not follow from %s x %s", tx.Amount, tx.AmountOriginal, tx.ExchangeRate)
			}
			return nil
		})
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.CreateTransaction(context.Background(), service.CreateTransactionRequest{
		UserID:   userID.String(),
		Type:     "income",
		Amount:   dec("1000000"),
		Currency: "USD",
		Date:     "2025-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UsedRate != "41.123457" || res.AmountUAH != "41123457.00" {
		t.Errorf("unexpected conversion %+v", res)
	}
}

func TestPatchTransactionNotesOnlyKeepsCurrencyFields(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	existing := storedUSD()
	f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(existing, nil)
	f.txRepo.EXPECT().Update(gomock.Any(), existing, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *model.Transaction, changes map[string]any) error {
			notes, ok := changes["notes"].(*string)
			if len(changes) != 1 || !ok || notes == nil || *notes != "corrected" {
				t.Errorf("expected only notes to change, got %v", changes)
			}
			return nil
		})
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
		patchRequest(t, `{"description":"corrected"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recalculated {
		t.Error("notes-only edit must not recalculate")
	}
	got := res.Transaction
	if got.Amount != "4125.00" || got.ExchangeRate != "41.25" || got.CurrencyCode != "USD" || *got.Notes != "corrected" {
		t.Errorf("unexpected transaction %+v", got)
	}
}

func TestPatchTransactionToLocalCurrency(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(storedUSD(), nil)
	f.txRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *model.Transaction, changes map[string]any) error {
			if original, ok := changes["amount_original"].(*decimal.Decimal); !ok || original != nil {
				t.Errorf("expected amount_original to be cleared, got %v", changes["amount_original"])
			}
			if rate := changes["exchange_rate"].(decimal.Decimal); !rate.Equal(decimal.NewFromInt(1)) {
				t.Errorf("expected rate 1, got %s", rate)
			}
			if changes["is_foreign_currency"] != false || changes["currency_code"] != "UAH" {
				t.Errorf("unexpected currency columns %v", changes)
			}
			return nil
		})
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
		patchRequest(t, `{"currency":"UAH"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Transaction
	if got.Amount != "100.00" || got.ExchangeRate != "1" || got.AmountOriginal != nil || got.IsForeignCurrency {
		t.Errorf("unexpected transaction %+v", got)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != service.EventTransactionUpdated {
		t.Errorf("expected one updated event, got %+v", f.publisher.events)
	}
}

func TestPatchTransactionNullManualRateRefetches(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(storedUSD(), nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), "USD", jan15).Return(dec("41.5"), nil)
	f.txRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
		patchRequest(t, `{"manual_rate":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transaction.Amount != "4150.00" || res.Transaction.ExchangeRate != "41.5" {
		t.Errorf("unexpected transaction %+v", res.Transaction)
	}
}

func TestPatchTransactionRateUnavailableWritesNothing(t *testing.T) {
	f := newTransactionFixture(t)
	f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(storedUSD(), nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), "USD", gomock.Any()).
		Return(decimal.Zero, fmt.Errorf("%w: timeout", exchange.ErrRateUnavailable))
	f.txManager.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Times(0)
	f.txRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
		patchRequest(t, `{"date":"2025-02-01","description":"moved"}`))
	if !errors.Is(err, exchange.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestPatchTransactionErrors(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		f := newTransactionFixture(t)
		_, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(), patchRequest(t, `{}`))
		if !errors.Is(err, service.ErrNothingToUpdate) || !errors.Is(err, service.ErrMalformedInput) {
			t.Fatalf("expected ErrNothingToUpdate, got %v", err)
		}
	})

	t.Run("missing transaction", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(nil, gorm.ErrRecordNotFound)
		_, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
			patchRequest(t, `{"amount":5}`))
		if !errors.Is(err, service.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("local amount beyond column range", func(t *testing.T) {
		f := newTransactionFixture(t)
		f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(storedUSD(), nil)
		f.txRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		_, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
			patchRequest(t, `{"amount":9999999999999999.99}`))
		if !errors.Is(err, service.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		f := newTransactionFixture(t)
		_, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
			patchRequest(t, `{"amount":0}`))
		if !errors.Is(err, service.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := newTransactionFixture(t)
		passThroughTx(f.txManager)
		f.txRepo.EXPECT().Delete(gomock.Any(), userID, txID).Return(true, nil)
		f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		if err := f.svc.DeleteTransaction(context.Background(), userID.String(), txID.String()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.publisher.events) != 1 || f.publisher.events[0].Type != service.EventTransactionDeleted {
			t.Errorf("expected one deleted event, got %+v", f.publisher.events)
		}
	})

	t.Run("missing", func(t *testing.T) {
		f := newTransactionFixture(t)
		passThroughTx(f.txManager)
		f.txRepo.EXPECT().Delete(gomock.Any(), userID, txID).Return(false, nil)

		err := f.svc.DeleteTransaction(context.Background(), userID.String(), txID.String())
		if !errors.Is(err, service.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(f.publisher.events) != 0 {
			t.Errorf("no event expected, got %+v", f.publisher.events)
		}
	})
}

func TestGetTransactionsBuildsFilter(t *testing.T) {
	f := newTransactionFixture(t)
	f.txRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
			if filter.UserID != userID || filter.Type != model.TransactionExpense || filter.Limit != 50 || filter.Offset != 100 {
				t.Errorf("unexpected filter %+v", filter)
			}
			if filter.StartDate == nil || !filter.StartDate.Equal(jan15) || filter.EndDate != nil {
				t.Errorf("unexpected date bounds %+v", filter)
			}
			return []model.Transaction{*storedUSD()}, 101, nil
		})

	res, total, err := f.svc.GetTransactions(context.Background(), service.ListTransactionsRequest{
		UserID:    userID.String(),
		StartDate: "2025-01-15",
		Type:      "expense",
		Offset:    100,
		Limit:     50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 101 || len(res) != 1 || res[0].Date != "2025-01-15" {
		t.Errorf("unexpected result %d %+v", total, res)
	}
}

func TestPatchTransactionNullClearsNotes(t *testing.T) {
	f := newTransactionFixture(t)
	passThroughTx(f.txManager)

	existing := storedUSD()
	f.txRepo.EXPECT().FindByID(gomock.Any(), userID, txID).Return(existing, nil)
	f.txRepo.EXPECT().Update(gomock.Any(), existing, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *model.Transaction, changes map[string]any) error {
			if notes, ok := changes["notes"].(*string); !ok || notes != nil {
				t.Errorf("expected notes to be cleared, got %v", changes["notes"])
			}
			if categoryID, ok := changes["category_id"].(*uuid.UUID); !ok || categoryID != nil {
				t.Errorf("expected category to be cleared, got %v", changes["category_id"])
			}
			return nil
		})
	f.auditRepo.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.PatchTransaction(context.Background(), userID.String(), txID.String(),
		patchRequest(t, `{"description":null,"category_id":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transaction.Notes != nil || res.Transaction.CategoryID != nil {
		t.Errorf("unexpected transaction %+v", res.Transaction)
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"fopassistant/internal/currency"
	"fopassistant/internal/logger"
	"fopassistant/internal/model"
	"fopassistant/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateTransactionRequest struct {
	UserID      string           `json:"user_id" binding:"required"`
	CategoryID  *string          `json:"category_id"`
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal  `json:"amount" swaggertype:"number"`
	Currency    string           `json:"currency"` // ISO code, default UAH
	Description *string          `json:"description"`
	Date        string           `json:"date" binding:"required"` // YYYY-MM-DD
	ManualRate  *decimal.Decimal `json:"manual_rate" swaggertype:"number"`
}

// PatchTransactionRequest tracks which keys were sent. Touching amount, date,
// currency or manual_rate recalculates the local amount; null manual_rate
// forces a fresh rate lookup.
type PatchTransactionRequest struct {
	CategoryID  model.Optional[string]          `json:"category_id" swaggertype:"string"`
	Type        model.Optional[string]          `json:"type" swaggertype:"string"`
	Amount      model.Optional[decimal.Decimal] `json:"amount" swaggertype:"number"`
	Description model.Optional[string]          `json:"description" swaggertype:"string"`
	Date        model.Optional[string]          `json:"date" swaggertype:"string"`
	Currency    model.Optional[string]          `json:"currency" swaggertype:"string"`
	ManualRate  model.Optional[decimal.Decimal] `json:"manual_rate" swaggertype:"number"`
}

type ListTransactionsRequest struct {
	UserID    string `form:"user_id" binding:"required"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Type      string `form:"type"`
	Offset    int    `form:"-"`
	Limit     int    `form:"-"`
}

type TransactionResponse struct {
	ID                string  `json:"transaction_id"`
	UserID            string  `json:"user_id"`
	CategoryID        *string `json:"category_id"`
	Type              string  `json:"transaction_type"`
	Amount            string  `json:"transaction_amount"`
	Date              string  `json:"transaction_date"`
	Notes             *string `json:"notes"`
	IsForeignCurrency bool    `json:"is_foreign_currency"`
	CurrencyCode      string  `json:"currency_code"`
	AmountOriginal    *string `json:"amount_original"`
	ExchangeRate      string  `json:"exchange_rate"`
	CreatedAt         string  `json:"created_at"`
}

type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	UsedRate    string              `json:"used_rate"`
	AmountUAH   string              `json:"amount_uah"`
}

type PatchTransactionResponse struct {
	Transaction  TransactionResponse `json:"transaction"`
	Recalculated bool                `json:"recalculated"`
}

// --- Interface ---

type TransactionService interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error)
	GetTransactions(ctx context.Context, req ListTransactionsRequest) ([]TransactionResponse, int64, error)
	GetTransaction(ctx context.Context, userID, id string) (TransactionResponse, error)
	PatchTransaction(ctx context.Context, userID, id string, req PatchTransactionRequest) (PatchTransactionResponse, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

type transactionService struct {
	txRepo     repository.TransactionRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	normalizer *currency.Normalizer
	publisher  EventPublisher
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	normalizer *currency.Normalizer,
	publisher EventPublisher,
) TransactionService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &transactionService{
		txRepo:     txRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		normalizer: normalizer,
		publisher:  publisher,
	}
}

// --- Implementation ---

// CreateTransaction resolves the rate before opening the database transaction, so a
// failed lookup writes nothing.
func (s *transactionService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return CreateTransactionResponse{}, err
	}
	categoryID, err := parseOptionalID("category_id", req.CategoryID)
	if err != nil {
		return CreateTransactionResponse{}, err
	}
	txType := model.TransactionType(req.Type)
	if !txType.Valid() {
		return CreateTransactionResponse{}, malformed("type must be income or expense")
	}
	if err := validateAmount(req.Amount); err != nil {
		return CreateTransactionResponse{}, err
	}
	code, err := parseCurrency(req.Currency)
	if err != nil {
		return CreateTransactionResponse{}, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return CreateTransactionResponse{}, err
	}
	if req.ManualRate != nil {
		if err := validateManualRate(*req.ManualRate); err != nil {
			return CreateTransactionResponse{}, err
		}
	}

	amounts, err := s.normalizer.Create(ctx, currency.CreateInput{
		Amount:       req.Amount,
		CurrencyCode: code,
		Date:         date,
		ManualRate:   req.ManualRate,
	})
	if err != nil {
		return CreateTransactionResponse{}, err
	}
	if err := validateLocalAmount(amounts); err != nil {
		return CreateTransactionResponse{}, err
	}

	tx := model.Transaction{
		ID:         uuid.New(),
		UserID:     uid,
		CategoryID: categoryID,
		Type:       txType,
		Notes:      req.Description,
	}
	amounts.Apply(&tx)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.txRepo.Create(txCtx, &tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, uid, model.ActionCreateTransaction, tx.ID.String(), req)
	})
	if err != nil {
		return CreateTransactionResponse{}, err
	}

	logger.L.Info("Transaction created", "transaction_id", tx.ID, "user_id", uid, "currency", tx.CurrencyCode)
	s.publish(EventTransactionCreated, &tx)

	return CreateTransactionResponse{
		Transaction: toTransactionResponse(&tx),
		UsedRate:    tx.ExchangeRate.String(),
		AmountUAH:   tx.Amount.StringFixed(2),
	}, nil
}

func (s *transactionService) GetTransactions(ctx context.Context, req ListTransactionsRequest) ([]TransactionResponse, int64, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, 0, err
	}
	filter := repository.TransactionFilter{UserID: uid, Offset: req.Offset, Limit: req.Limit}
	if filter.StartDate, err = parseOptionalDate("start_date", req.StartDate); err != nil {
		return nil, 0, err
	}
	if filter.EndDate, err = parseOptionalDate("end_date", req.EndDate); err != nil {
		return nil, 0, err
	}
	if req.Type != "" {
		filter.Type = model.TransactionType(req.Type)
		if !filter.Type.Valid() {
			return nil, 0, malformed("type must be income or expense")
		}
	}

	txs, total, err := s.txRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	res := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		res = append(res, toTransactionResponse(&txs[i]))
	}
	return res, total, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, id string) (TransactionResponse, error) {
	uid, txID, err := parseOwnedID(userID, id)
	if err != nil {
		return TransactionResponse{}, err
	}
	tx, err := s.txRepo.FindByID(ctx, uid, txID)
	if err != nil {
		return TransactionResponse{}, notFoundOr(err, "transaction")
	}
	return toTransactionResponse(tx), nil
}

// PatchTransaction merges the present fields into the stored record. Currency
// columns are rewritten only when a financial field was sent.
func (s *transactionService) PatchTransaction(ctx context.Context, userID, id string, req PatchTransactionRequest) (PatchTransactionResponse, error) {
	uid, txID, err := parseOwnedID(userID, id)
	if err != nil {
		return PatchTransactionResponse{}, err
	}
	input, err := toPatchInput(req)
	if err != nil {
		return PatchTransactionResponse{}, err
	}

	// null clears category and notes; type is mandatory
	changes := map[string]any{}
	if req.CategoryID.Set {
		categoryID, err := parseOptionalID("category_id", req.CategoryID.Ptr())
		if err != nil {
			return PatchTransactionResponse{}, err
		}
		changes["category_id"] = categoryID
	}
	if req.Type.Set {
		txType := model.TransactionType(req.Type.Value)
		if !req.Type.Valid || !txType.Valid() {
			return PatchTransactionResponse{}, malformed("type must be income or expense")
		}
		changes["transaction_type"] = txType
	}
	if req.Description.Set {
		changes["notes"] = req.Description.Ptr()
	}
	if len(changes) == 0 && !input.Touched() {
		return PatchTransactionResponse{}, ErrNothingToUpdate
	}

	tx, err := s.txRepo.FindByID(ctx, uid, txID)
	if err != nil {
		return PatchTransactionResponse{}, notFoundOr(err, "transaction")
	}

	result, err := s.normalizer.Patch(ctx, currency.FromTransaction(tx), input)
	if err != nil {
		return PatchTransactionResponse{}, err
	}
	if result.Recalculated {
		if err := validateLocalAmount(result.Amounts); err != nil {
			return PatchTransactionResponse{}, err
		}
		changes["transaction_amount"] = result.AmountLocal
		changes["transaction_date"] = result.Date
		changes["is_foreign_currency"] = result.IsForeign()
		changes["currency_code"] = result.CurrencyCode
		changes["amount_original"] = result.AmountOriginal
		changes["exchange_rate"] = result.ExchangeRate
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.txRepo.Update(txCtx, tx, changes); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, uid, model.ActionUpdateTransaction, tx.ID.String(), changes)
	})
	if err != nil {
		return PatchTransactionResponse{}, err
	}

	if v, ok := changes["category_id"]; ok {
		tx.CategoryID = v.(*uuid.UUID)
	}
	if req.Type.Set {
		tx.Type = model.TransactionType(req.Type.Value)
	}
	if req.Description.Set {
		tx.Notes = req.Description.Ptr()
	}
	if result.Recalculated {
		result.Apply(tx)
	}

	logger.L.Info("Transaction updated", "transaction_id", tx.ID, "user_id", uid,
		"recalculated", result.Recalculated, "rate_fetched", result.RateFetched)
	s.publish(EventTransactionUpdated, tx)

	return PatchTransactionResponse{
		Transaction:  toTransactionResponse(tx),
		Recalculated: result.Recalculated,
	}, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	uid, txID, err := parseOwnedID(userID, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		deleted, err := s.txRepo.Delete(txCtx, uid, txID)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		if !deleted {
			return fmt.Errorf("transaction: %w", ErrNotFound)
		}
		return writeAudit(txCtx, s.auditRepo, uid, model.ActionDeleteTransaction, txID.String(), nil)
	})
	if err != nil {
		return err
	}

	s.publish(EventTransactionDeleted, &model.Transaction{ID: txID, UserID: uid})
	return nil
}

// toPatchInput validates the financial fields of a patch. Null amount, date or
// currency still counts as touched and keeps the stored value.
func toPatchInput(req PatchTransactionRequest) (currency.PatchInput, error) {
	input := currency.PatchInput{
		Amount:     req.Amount,
		ManualRate: req.ManualRate,
	}
	if req.Amount.Valid {
		if err := validateAmount(req.Amount.Value); err != nil {
			return currency.PatchInput{}, err
		}
	}
	if req.ManualRate.Valid {
		if err := validateManualRate(req.ManualRate.Value); err != nil {
			return currency.PatchInput{}, err
		}
	}
	if req.Currency.Set {
		input.CurrencyCode = model.Null[string]()
		if req.Currency.Valid {
			code, err := parseCurrency(req.Currency.Value)
			if err != nil {
				return currency.PatchInput{}, err
			}
			input.CurrencyCode = model.Some(code)
		}
	}
	if req.Date.Set {
		input.Date = model.Null[time.Time]()
		if req.Date.Valid {
			date, err := parseDate("date", req.Date.Value)
			if err != nil {
				return currency.PatchInput{}, err
			}
			input.Date = model.Some(date)
		}
	}
	return input, nil
}

func parseOwnedID(userID, id string) (uuid.UUID, uuid.UUID, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	txID, err := parseID("transaction id", id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return uid, txID, nil
}

func (s *transactionService) publish(eventType string, tx *model.Transaction) {
	s.publisher.Publish(tx.UserID, LedgerEvent{
		Type:          eventType,
		TransactionID: tx.ID.String(),
		UserID:        tx.UserID.String(),
	})
}

func toTransactionResponse(tx *model.Transaction) TransactionResponse {
	res := TransactionResponse{
		ID:                tx.ID.String(),
		UserID:            tx.UserID.String(),
		Type:              string(tx.Type),
		Amount:            tx.Amount.StringFixed(2),
		Date:              tx.Date.Format(model.DateLayout),
		Notes:             tx.Notes,
		IsForeignCurrency: tx.IsForeignCurrency,
		CurrencyCode:      tx.CurrencyCode,
		ExchangeRate:      tx.ExchangeRate.String(),
		CreatedAt:         tx.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if tx.CategoryID != nil {
		categoryID := tx.CategoryID.String()
		res.CategoryID = &categoryID
	}
	if tx.AmountOriginal != nil {
		original := tx.AmountOriginal.StringFixed(2)
		res.AmountOriginal = &original
	}
	return res
}

package repository

import (
	"context"
	"time"

	"fopassistant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows a user's ledger. Dates are inclusive.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      model.TransactionType // empty = any
	Offset    int
	Limit     int
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error)
	Update(ctx context.Context, tx *model.Transaction, changes map[string]any) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	if err := GetDB(ctx, r.db).First(&tx, "transaction_id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("user_id = ?", filter.UserID)
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filter.EndDate)
	}
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", filter.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("transaction_date desc").Order("created_at desc").
		Offset(filter.Offset).Limit(filter.Limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// Update writes only the given columns of an existing row.
func (r *transactionRepository) Update(ctx context.Context, tx *model.Transaction, changes map[string]any) error {
	return GetDB(ctx, r.db).Model(tx).Where("user_id = ?", tx.UserID).Updates(changes).Error
}

// Delete reports whether a row was removed.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := GetDB(ctx, r.db).Where("transaction_id = ? AND user_id = ?", id, userID).Delete(&model.Transaction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalCurrency is the ledger currency; every reported amount is expressed in it.
const LocalCurrency = "UAH"

// DateLayout is the wire and storage format of transaction dates.
const DateLayout = "2006-01-02"

// Scales of the currency columns. Stored values are rounded to them.
const (
	AmountScale = 2
	RateScale   = 6
)

// Exclusive upper bounds of the decimal(18,2) and decimal(18,6) columns.
var (
	MaxAmount = decimal.New(1, 16)
	MaxRate   = decimal.New(1, 12)
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a ledger entry. Amount is always the local currency value:
// Amount = round(AmountOriginal * ExchangeRate, 2) for foreign entries.
type Transaction struct {
	ID                uuid.UUID        `gorm:"column:transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"transaction_id"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID        *uuid.UUID       `gorm:"type:uuid;index" json:"category_id"`
	Type              TransactionType  `gorm:"column:transaction_type;type:varchar(10);not null;index" json:"transaction_type"`
	Amount            decimal.Decimal  `gorm:"column:transaction_amount;type:decimal(18,2);not null" json:"transaction_amount"`
	Date              time.Time        `gorm:"column:transaction_date;type:date;not null;index" json:"transaction_date"`
	Notes             *string          `gorm:"type:text" json:"notes"`
	IsForeignCurrency bool             `gorm:"not null" json:"is_foreign_currency"`
	CurrencyCode      string           `gorm:"type:varchar(3);not null" json:"currency_code"`
	AmountOriginal    *decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount_original"` // nil for local currency
	ExchangeRate      decimal.Decimal  `gorm:"type:decimal(18,6);not null" json:"exchange_rate"`
	CreatedAt         time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

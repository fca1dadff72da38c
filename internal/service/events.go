package service

import "github.com/google/uuid"

const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// LedgerEvent is pushed to the owner's live connections after a committed write.
type LedgerEvent struct {
	Type          string `json:"type"`
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
}

type EventPublisher interface {
	Publish(userID uuid.UUID, event any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, any) {}

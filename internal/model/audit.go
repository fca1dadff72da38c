package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateTransaction = "CREATE_TRANSACTION"
	ActionUpdateTransaction = "UPDATE_TRANSACTION"
	ActionDeleteTransaction = "DELETE_TRANSACTION"
	ActionCreateSettings    = "CREATE_SETTINGS"
	ActionUpdateSettings    = "UPDATE_SETTINGS"
)

// AuditLog records who changed which ledger or settings record, and how.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID  string    `gorm:"type:varchar(50);index" json:"entity_id"`
	Details   string    `gorm:"type:jsonb" json:"details"` // serialized change set
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

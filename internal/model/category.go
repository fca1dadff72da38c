package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups transactions. System categories have no owner.
type Category struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index" json:"user_id"` // nil = system category
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Type      TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	IsFopOnly bool            `gorm:"not null" json:"is_fop_only"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

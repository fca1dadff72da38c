package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is keyed by the user id issued by the identity provider.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IsFop     bool      `gorm:"not null" json:"is_fop"`
	FullName  *string   `gorm:"type:varchar(100)" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

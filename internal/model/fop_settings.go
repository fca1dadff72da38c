package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FopGroup is the simplified-taxation tier of a sole proprietor.
type FopGroup int

const (
	FopGroup1 FopGroup = 1
	FopGroup2 FopGroup = 2
	FopGroup3 FopGroup = 3
	FopGroup4 FopGroup = 4
)

func (g FopGroup) Valid() bool {
	switch g {
	case FopGroup1, FopGroup2, FopGroup3, FopGroup4:
		return true
	}
	return false
}

type TaxSystem string

const (
	TaxSystemSimplified TaxSystem = "simplified"
	TaxSystemGeneral    TaxSystem = "general"
)

func (t TaxSystem) Valid() bool {
	return t == TaxSystemSimplified || t == TaxSystemGeneral
}

type ActivityType string

const (
	ActivityServices    ActivityType = "services"
	ActivityTrade       ActivityType = "trade"
	ActivityProduction  ActivityType = "production"
	ActivityAgriculture ActivityType = "agriculture"
	ActivityOther       ActivityType = "other"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityServices, ActivityTrade, ActivityProduction, ActivityAgriculture, ActivityOther:
		return true
	}
	return false
}

type ReportingPeriod string

const (
	PeriodMonth   ReportingPeriod = "month"
	PeriodQuarter ReportingPeriod = "quarter"
	PeriodYear    ReportingPeriod = "year"
)

func (p ReportingPeriod) Valid() bool {
	return p == PeriodMonth || p == PeriodQuarter || p == PeriodYear
}

// FopSettings is the single active tax regime record of a taxpayer.
// Group specific fields (land for group 4) are kept even when another group is active.
type FopSettings struct {
	ID                 uuid.UUID        `gorm:"column:setting_id;type:uuid;default:gen_random_uuid();primaryKey" json:"setting_id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FopGroup           FopGroup         `gorm:"not null" json:"fop_group"`
	TaxSystem          TaxSystem        `gorm:"type:varchar(20);not null" json:"tax_system"`
	ActivityType       ActivityType     `gorm:"type:varchar(20);not null" json:"activity_type"`
	ReportingPeriod    ReportingPeriod  `gorm:"type:varchar(10);not null" json:"reporting_period"`
	IsZed              bool             `gorm:"not null" json:"is_zed"` // foreign economic activity
	HasEmployees       bool             `gorm:"not null" json:"has_employees"`
	EmployeesCount     int              `gorm:"not null" json:"employees_count"`
	IsVatPayer         bool             `gorm:"not null" json:"is_vat_payer"`
	IncomeTaxPercent   *decimal.Decimal `gorm:"type:decimal(5,2)" json:"income_tax_percent"`   // nil = group default
	MilitaryTaxPercent *decimal.Decimal `gorm:"type:decimal(5,2)" json:"military_tax_percent"` // nil = group default
	EsvValue           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"esv_value"`
	LandAreaHa         *decimal.Decimal `gorm:"type:decimal(12,4)" json:"land_area_ha"`
	NormativeLandValue *decimal.Decimal `gorm:"type:decimal(18,2)" json:"normative_land_value"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (FopSettings) TableName() string {
	return "fop_settings"
}

// DefaultFopSettings is the record created on first access.
func DefaultFopSettings(userID uuid.UUID) FopSettings {
	incomePercent := decimal.NewFromInt(5)
	militaryPercent := decimal.NewFromInt(1)
	return FopSettings{
		UserID:             userID,
		FopGroup:           FopGroup3,
		TaxSystem:          TaxSystemSimplified,
		ActivityType:       ActivityServices,
		ReportingPeriod:    PeriodQuarter,
		IncomeTaxPercent:   &incomePercent,
		MilitaryTaxPercent: &militaryPercent,
		EsvValue:           decimal.RequireFromString("1760.00"),
	}
}

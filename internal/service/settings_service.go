package service

import (
	"context"
	"errors"
	"fmt"

	"fopassistant/internal/logger"
	"fopassistant/internal/model"
	"fopassistant/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// UpdateSettingsRequest is a partial update: only keys present in the payload are applied.
// Null clears the optional percentages and land fields; it is rejected elsewhere.
type UpdateSettingsRequest struct {
	FopGroup           model.Optional[model.FopGroup]        `json:"fop_group" swaggertype:"integer"`
	TaxSystem          model.Optional[model.TaxSystem]       `json:"tax_system" swaggertype:"string"`
	ActivityType       model.Optional[model.ActivityType]    `json:"activity_type" swaggertype:"string"`
	ReportingPeriod    model.Optional[model.ReportingPeriod] `json:"reporting_period" swaggertype:"string"`
	IsZed              model.Optional[bool]                  `json:"is_zed" swaggertype:"boolean"`
	HasEmployees       model.Optional[bool]                  `json:"has_employees" swaggertype:"boolean"`
	EmployeesCount     model.Optional[int]                   `json:"employees_count" swaggertype:"integer"`
	IsVatPayer         model.Optional[bool]                  `json:"is_vat_payer" swaggertype:"boolean"`
	IncomeTaxPercent   model.Optional[decimal.Decimal]       `json:"income_tax_percent" swaggertype:"number"`
	MilitaryTaxPercent model.Optional[decimal.Decimal]       `json:"military_tax_percent" swaggertype:"number"`
	EsvValue           model.Optional[decimal.Decimal]       `json:"esv_value" swaggertype:"number"`
	LandAreaHa         model.Optional[decimal.Decimal]       `json:"land_area_ha" swaggertype:"number"`
	NormativeLandValue model.Optional[decimal.Decimal]       `json:"normative_land_value" swaggertype:"number"`
}

func (r UpdateSettingsRequest) empty() bool {
	return !r.FopGroup.Set && !r.TaxSystem.Set && !r.ActivityType.Set && !r.ReportingPeriod.Set &&
		!r.IsZed.Set && !r.HasEmployees.Set && !r.EmployeesCount.Set && !r.IsVatPayer.Set &&
		!r.IncomeTaxPercent.Set && !r.MilitaryTaxPercent.Set && !r.EsvValue.Set &&
		!r.LandAreaHa.Set && !r.NormativeLandValue.Set
}

type SettingsResponse struct {
	SettingID          string           `json:"setting_id"`
	UserID             string           `json:"user_id"`
	FopGroup           model.FopGroup   `json:"fop_group"`
	TaxSystem          string           `json:"tax_system"`
	ActivityType       string           `json:"activity_type"`
	ReportingPeriod    string           `json:"reporting_period"`
	IsZed              bool             `json:"is_zed"`
	HasEmployees       bool             `json:"has_employees"`
	EmployeesCount     int              `json:"employees_count"`
	IsVatPayer         bool             `json:"is_vat_payer"`
	IncomeTaxPercent   *decimal.Decimal `json:"income_tax_percent" swaggertype:"string"`
	MilitaryTaxPercent *decimal.Decimal `json:"military_tax_percent" swaggertype:"string"`
	EsvValue           decimal.Decimal  `json:"esv_value" swaggertype:"string"`
	LandAreaHa         *decimal.Decimal `json:"land_area_ha" swaggertype:"string"`
	NormativeLandValue *decimal.Decimal `json:"normative_land_value" swaggertype:"string"`
	UpdatedAt          string           `json:"updated_at"`
}

// --- Interface ---

type SettingsService interface {
	GetSettings(ctx context.Context, userID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID string, req UpdateSettingsRequest) (SettingsResponse, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// --- Implementation ---

// GetSettings creates the default record on first access.
func (s *settingsService) GetSettings(ctx context.Context, userID string) (SettingsResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return SettingsResponse{}, err
	}

	var settings *model.FopSettings
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, findErr := s.settingsRepo.FindByUserID(txCtx, uid)
		if findErr == nil {
			settings = found
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to fetch settings: %w", findErr)
		}

		defaults := model.DefaultFopSettings(uid)
		defaults.ID = uuid.New()
		if err := s.settingsRepo.Create(txCtx, &defaults); err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
		if err := writeAudit(txCtx, s.auditRepo, uid, model.ActionCreateSettings, defaults.ID.String(), &defaults); err != nil {
			return err
		}
		logger.L.Info("Created default tax settings", "user_id", uid)
		settings = &defaults
		return nil
	})
	if err != nil {
		return SettingsResponse{}, err
	}

	return toSettingsResponse(settings), nil
}

// UpdateSettings applies the present fields, creating the record from defaults when absent.
func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req UpdateSettingsRequest) (SettingsResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return SettingsResponse{}, err
	}
	if req.empty() {
		return SettingsResponse{}, ErrNothingToUpdate
	}

	var settings *model.FopSettings
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.settingsRepo.FindByUserID(txCtx, uid)
		created := false
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			defaults := model.DefaultFopSettings(uid)
			defaults.ID = uuid.New()
			current = &defaults
			created = true
		case findErr != nil:
			return fmt.Errorf("failed to fetch settings: %w", findErr)
		}

		if err := applySettingsPatch(current, req); err != nil {
			return err
		}

		action := model.ActionUpdateSettings
		if created {
			action = model.ActionCreateSettings
			if err := s.settingsRepo.Create(txCtx, current); err != nil {
				return fmt.Errorf("failed to create settings: %w", err)
			}
		} else if err := s.settingsRepo.Save(txCtx, current); err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		if err := writeAudit(txCtx, s.auditRepo, uid, action, current.ID.String(), req); err != nil {
			return err
		}
		settings = current
		return nil
	})
	if err != nil {
		return SettingsResponse{}, err
	}

	return toSettingsResponse(settings), nil
}

func applySettingsPatch(s *model.FopSettings, req UpdateSettingsRequest) error {
	if req.FopGroup.Set {
		if !req.FopGroup.Valid || !req.FopGroup.Value.Valid() {
			return malformed("fop_group must be 1, 2, 3 or 4")
		}
		s.FopGroup = req.FopGroup.Value
	}
	if req.TaxSystem.Set {
		if !req.TaxSystem.Valid || !req.TaxSystem.Value.Valid() {
			return malformed("tax_system must be simplified or general")
		}
		s.TaxSystem = req.TaxSystem.Value
	}
	if req.ActivityType.Set {
		if !req.ActivityType.Valid || !req.ActivityType.Value.Valid() {
			return malformed("activity_type must be services, trade, production, agriculture or other")
		}
		s.ActivityType = req.ActivityType.Value
	}
	if req.ReportingPeriod.Set {
		if !req.ReportingPeriod.Valid || !req.ReportingPeriod.Value.Valid() {
			return malformed("reporting_period must be month, quarter or year")
		}
		s.ReportingPeriod = req.ReportingPeriod.Value
	}

	for _, flag := range []struct {
		name  string
		value model.Optional[bool]
		dst   *bool
	}{
		{"is_zed", req.IsZed, &s.IsZed},
		{"has_employees", req.HasEmployees, &s.HasEmployees},
		{"is_vat_payer", req.IsVatPayer, &s.IsVatPayer},
	} {
		if !flag.value.Set {
			continue
		}
		if !flag.value.Valid {
			return malformed("%s must not be null", flag.name)
		}
		*flag.dst = flag.value.Value
	}

	if req.EmployeesCount.Set {
		if !req.EmployeesCount.Valid || req.EmployeesCount.Value < 0 {
			return malformed("employees_count must be a non-negative integer")
		}
		s.EmployeesCount = req.EmployeesCount.Value
	}

	if req.IncomeTaxPercent.Set {
		if req.IncomeTaxPercent.Valid {
			if err := validatePercent("income_tax_percent", req.IncomeTaxPercent.Value); err != nil {
				return err
			}
		}
		s.IncomeTaxPercent = req.IncomeTaxPercent.Ptr()
	}
	if req.MilitaryTaxPercent.Set {
		if req.MilitaryTaxPercent.Valid {
			if err := validatePercent("military_tax_percent", req.MilitaryTaxPercent.Value); err != nil {
				return err
			}
		}
		s.MilitaryTaxPercent = req.MilitaryTaxPercent.Ptr()
	}
	if req.EsvValue.Set {
		if !req.EsvValue.Valid {
			return malformed("esv_value must not be null")
		}
		if err := validateNonNegative("esv_value", req.EsvValue.Value); err != nil {
			return err
		}
		s.EsvValue = req.EsvValue.Value
	}
	if req.LandAreaHa.Set {
		if req.LandAreaHa.Valid {
			if err := validateNonNegative("land_area_ha", req.LandAreaHa.Value); err != nil {
				return err
			}
		}
		s.LandAreaHa = req.LandAreaHa.Ptr()
	}
	if req.NormativeLandValue.Set {
		if req.NormativeLandValue.Valid {
			if err := validateNonNegative("normative_land_value", req.NormativeLandValue.Value); err != nil {
				return err
			}
		}
		s.NormativeLandValue = req.NormativeLandValue.Ptr()
	}

	return nil
}

func toSettingsResponse(s *model.FopSettings) SettingsResponse {
	return SettingsResponse{
		SettingID:          s.ID.String(),
		UserID:             s.UserID.String(),
		FopGroup:           s.FopGroup,
		TaxSystem:          string(s.TaxSystem),
		ActivityType:       string(s.ActivityType),
		ReportingPeriod:    string(s.ReportingPeriod),
		IsZed:              s.IsZed,
		HasEmployees:       s.HasEmployees,
		EmployeesCount:     s.EmployeesCount,
		IsVatPayer:         s.IsVatPayer,
		IncomeTaxPercent:   s.IncomeTaxPercent,
		MilitaryTaxPercent: s.MilitaryTaxPercent,
		EsvValue:           s.EsvValue,
		LandAreaHa:         s.LandAreaHa,
		NormativeLandValue: s.NormativeLandValue,
		UpdatedAt:          s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

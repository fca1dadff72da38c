package repository

import (
	"context"

	"fopassistant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks fopassistant/internal/repository SettingsRepository,TransactionRepository,CategoryRepository,ProfileRepository,AuditRepository,StatisticsRepository,TransactionManager

type SettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.FopSettings, error)
	Create(ctx context.Context, settings *model.FopSettings) error
	Save(ctx context.Context, settings *model.FopSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.FopSettings, error) {
	var settings model.FopSettings
	if err := GetDB(ctx, r.db).First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *model.FopSettings) error {
	return GetDB(ctx, r.db).Create(settings).Error
}

// Save writes every column, including false and zero values.
func (r *settingsRepository) Save(ctx context.Context, settings *model.FopSettings) error {
	return GetDB(ctx, r.db).Save(settings).Error
}

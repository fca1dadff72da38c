package repository

import (
	"context"

	"fopassistant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	ListVisible(ctx context.Context, userID uuid.UUID, includeFopOnly bool) ([]model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	FindOwned(ctx context.Context, userID, id uuid.UUID) (*model.Category, error)
	Rename(ctx context.Context, category *model.Category, name string) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// ListVisible returns system categories plus the user's own.
func (r *categoryRepository) ListVisible(ctx context.Context, userID uuid.UUID, includeFopOnly bool) ([]model.Category, error) {
	var categories []model.Category
	query := GetDB(ctx, r.db).Where("user_id IS NULL OR user_id = ?", userID)
	if !includeFopOnly {
		query = query.Where("is_fop_only = ?", false)
	}
	if err := query.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Create(category).Error
}

// FindOwned never matches system categories.
func (r *categoryRepository) FindOwned(ctx context.Context, userID, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).First(&category, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Rename(ctx context.Context, category *model.Category, name string) error {
	if err := GetDB(ctx, r.db).Model(category).Update("name", name).Error; err != nil {
		return err
	}
	category.Name = name
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Category{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

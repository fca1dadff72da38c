package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fopassistant/internal/model"
	"fopassistant/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=income expense"`
}

type RenameCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	IsFopOnly bool    `json:"is_fop_only"`
	IsSystem  bool    `json:"is_system"`
}

type CategoryListResponse struct {
	Income    []CategoryResponse `json:"income"`
	Expense   []CategoryResponse `json:"expense"`
	All       []CategoryResponse `json:"all"`
	UserIsFop bool               `json:"user_is_fop"`
}

type CategoryService interface {
	GetCategories(ctx context.Context, userID string) (CategoryListResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	RenameCategory(ctx context.Context, userID, id string, req RenameCategoryRequest) (CategoryResponse, error)
	DeleteCategory(ctx context.Context, userID, id string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	profileRepo  repository.ProfileRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, profileRepo repository.ProfileRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, profileRepo: profileRepo}
}

// GetCategories returns system categories plus the user's own. Users whose
// profile is not a FOP do not see FOP-only categories; without a user id only
// system categories are listed.
func (s *categoryService) GetCategories(ctx context.Context, userID string) (CategoryListResponse, error) {
	uid := uuid.Nil
	isFop := true
	if strings.TrimSpace(userID) != "" {
		parsed, err := parseID("user_id", userID)
		if err != nil {
			return CategoryListResponse{}, err
		}
		uid = parsed

		profile, err := s.profileRepo.FindByID(ctx, uid)
		switch {
		case err == nil:
			isFop = profile.IsFop
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return CategoryListResponse{}, fmt.Errorf("failed to fetch profile: %w", err)
		}
	}

	categories, err := s.categoryRepo.ListVisible(ctx, uid, isFop)
	if err != nil {
		return CategoryListResponse{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	res := CategoryListResponse{
		Income:    []CategoryResponse{},
		Expense:   []CategoryResponse{},
		All:       make([]CategoryResponse, 0, len(categories)),
		UserIsFop: isFop,
	}
	for i := range categories {
		c := toCategoryResponse(&categories[i])
		res.All = append(res.All, c)
		switch categories[i].Type {
		case model.TransactionIncome:
			res.Income = append(res.Income, c)
		case model.TransactionExpense:
			res.Expense = append(res.Expense, c)
		}
	}
	return res, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return CategoryResponse{}, err
	}
	name, err := categoryName(req.Name)
	if err != nil {
		return CategoryResponse{}, err
	}
	catType := model.TransactionType(req.Type)
	if !catType.Valid() {
		return CategoryResponse{}, malformed("type must be income or expense")
	}

	category := model.Category{
		ID:     uuid.New(),
		UserID: &uid,
		Name:   name,
		Type:   catType,
	}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to create category: %w", err)
	}
	return toCategoryResponse(&category), nil
}

// RenameCategory only touches the user's own categories; system ones are reported as not found.
func (s *categoryService) RenameCategory(ctx context.Context, userID, id string, req RenameCategoryRequest) (CategoryResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return CategoryResponse{}, err
	}
	categoryID, err := parseID("category id", id)
	if err != nil {
		return CategoryResponse{}, err
	}
	name, err := categoryName(req.Name)
	if err != nil {
		return CategoryResponse{}, err
	}

	category, err := s.categoryRepo.FindOwned(ctx, uid, categoryID)
	if err != nil {
		return CategoryResponse{}, notFoundOr(err, "category")
	}
	if err := s.categoryRepo.Rename(ctx, category, name); err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to rename category: %w", err)
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return err
	}
	categoryID, err := parseID("category id", id)
	if err != nil {
		return err
	}

	deleted, err := s.categoryRepo.Delete(ctx, uid, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	return nil
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", malformed("name must not be empty")
	}
	if len([]rune(name)) > 100 {
		return "", malformed("name must be at most 100 characters")
	}
	return name, nil
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	res := CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		IsFopOnly: c.IsFopOnly,
		IsSystem:  c.UserID == nil,
	}
	if c.UserID != nil {
		owner := c.UserID.String()
		res.UserID = &owner
	}
	return res
}

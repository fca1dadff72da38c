package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"fopassistant/internal/model"
	"fopassistant/internal/repository"

	"gorm.io/gorm"
)

var fullNamePattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁіІїЇєЄґҐ\s\-'’]+$`)

type CreateProfileRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	IsFop    *bool   `json:"is_fop"` // default true
	FullName *string `json:"full_name"`
}

type UpdateProfileRequest struct {
	IsFop    model.Optional[bool]   `json:"is_fop" swaggertype:"boolean"`
	FullName model.Optional[string] `json:"full_name" swaggertype:"string"`
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	IsFop     bool    `json:"is_fop"`
	FullName  *string `json:"full_name"`
	CreatedAt string  `json:"created_at"`
}

type ProfileService interface {
	CreateProfile(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	DeleteProfile(ctx context.Context, userID string) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) CreateProfile(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	uid, err := parseID("user_id", req.UserID)
	if err != nil {
		return ProfileResponse{}, err
	}
	if req.FullName != nil {
		if err := validateFullName(*req.FullName); err != nil {
			return ProfileResponse{}, err
		}
	}

	_, err = s.profileRepo.FindByID(ctx, uid)
	switch {
	case err == nil:
		return ProfileResponse{}, fmt.Errorf("profile: %w", ErrAlreadyExists)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return ProfileResponse{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile := model.Profile{ID: uid, IsFop: true, FullName: req.FullName}
	if req.IsFop != nil {
		profile.IsFop = *req.IsFop
	}
	if err := s.profileRepo.Create(ctx, &profile); err != nil {
		return ProfileResponse{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return toProfileResponse(&profile), nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (ProfileResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	profile, err := s.profileRepo.FindByID(ctx, uid)
	if err != nil {
		return ProfileResponse{}, notFoundOr(err, "profile")
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return ProfileResponse{}, err
	}

	changes := map[string]any{}
	if req.IsFop.Set {
		if !req.IsFop.Valid {
			return ProfileResponse{}, malformed("is_fop must not be null")
		}
		changes["is_fop"] = req.IsFop.Value
	}
	if req.FullName.Set {
		if req.FullName.Valid {
			if err := validateFullName(req.FullName.Value); err != nil {
				return ProfileResponse{}, err
			}
		}
		changes["full_name"] = req.FullName.Ptr()
	}
	if len(changes) == 0 {
		return ProfileResponse{}, ErrNothingToUpdate
	}

	profile, err := s.profileRepo.FindByID(ctx, uid)
	if err != nil {
		return ProfileResponse{}, notFoundOr(err, "profile")
	}
	if err := s.profileRepo.Update(ctx, profile, changes); err != nil {
		return ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	if req.IsFop.Set {
		profile.IsFop = req.IsFop.Value
	}
	if req.FullName.Set {
		profile.FullName = req.FullName.Ptr()
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) DeleteProfile(ctx context.Context, userID string) error {
	uid, err := parseID("user_id", userID)
	if err != nil {
		return err
	}
	deleted, err := s.profileRepo.Delete(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if !deleted {
		return fmt.Errorf("profile: %w", ErrNotFound)
	}
	return nil
}

// validateFullName allows 1 to 100 letters, apostrophes, hyphens and spaces.
func validateFullName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > 100 || strings.TrimSpace(name) == "" {
		return malformed("full_name must be between 1 and 100 characters")
	}
	if !fullNamePattern.MatchString(name) {
		return malformed("full_name may contain only letters, apostrophes, hyphens and spaces")
	}
	return nil
}

func toProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID.String(),
		IsFop:     p.IsFop,
		FullName:  p.FullName,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

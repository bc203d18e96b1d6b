package service

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

// ProfileService handles profile CRUD and the nested experience/education
// lists. Callers only ever mutate their own profile, so the userID on each
// input doubles as the ownership check.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         models.SocialLinks
}

type AddExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type AddEducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// Upsert creates the caller's profile or updates it in place. The one-profile-
// per-user invariant is held by reusing the existing row's ID on update plus
// the unique index on user_id.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if err := validation.ValidateProfile(in.Status, in.Skills); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile := &models.Profile{
		UserID:         in.UserID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         in.Skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         in.Social,
	}

	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, err
		}
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// Delete removes the caller's profile, their posts, and the account itself.
func (s *ProfileService) Delete(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.postRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// AddExperience validates and prepends a work-history entry to the caller's
// profile. Nothing is persisted when validation fails.
func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	if err := validation.ValidateExperience(in.Title, in.Company, in.From); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveExperience deletes one entry by id from the caller's own profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation validates and prepends a study-history entry.
func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	if err := validation.ValidateEducation(in.School, in.Degree, in.FieldOfStudy, in.From); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveEducation deletes one entry by id from the caller's own profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// nested experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, profileID uint, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uint) error
	AddEducation(ctx context.Context, profileID uint, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withNested preloads user identity and nested lists newest-first, so the
// head of each list is the most recently added entry. Only the public user
// columns are selected; profiles are world-readable and must not leak emails.
func (r *profileRepository) withNested(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar", "created_at", "updated_at")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		if err := r.withNested(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		if err := r.withNested(r.db.WithContext(ctx)).
			Order("created_at DESC").
			Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Profile already exists for this user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Profile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profileID uint, exp *models.Experience) error {
	exp.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateOwner(ctx, profileID)
	return nil
}

func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Experience{}, expID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", expID)
	}
	r.invalidateOwner(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profileID uint, edu *models.Education) error {
	edu.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateOwner(ctx, profileID)
	return nil
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Education{}, eduID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Education", eduID)
	}
	r.invalidateOwner(ctx, profileID)
	return nil
}

func (r *profileRepository) invalidateOwner(ctx context.Context, profileID uint) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Select("user_id").First(&profile, profileID).Error; err == nil {
		cache.InvalidateProfile(ctx, profile.UserID)
	}
}

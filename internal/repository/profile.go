package repository

import (
	"context"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileInput carries the fields of a profile upsert. Empty fields are
// treated as absent and leave the stored value untouched; social links are
// merged individually.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         string // comma-separated, split and trimmed on store
	Youtube        string
	Facebook       string
	Twitter        string
	Instagram      string
	Linkedin       string
}

// ProfileRepository owns the profile aggregate: the profile document plus
// its embedded experience and education lists, and the account cascade.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, userID uint, input *ProfileInput) (*models.Profile, error)
	AddExperience(ctx context.Context, userID uint, entry *models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, entry *models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withSubLists preloads the embedded lists newest-first. Entries are only
// ever inserted at the head and never reordered, so id DESC is the display
// order.
func withSubLists(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := withSubLists(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("No profile found for the user")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey(), &profiles, cache.ProfileListTTL, func() error {
		return withSubLists(r.db.WithContext(ctx)).Find(&profiles).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID uint, input *ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, models.NewInternalError(err)
	}
	profile.UserID = userID
	applyProfileInput(&profile, input)

	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfileList(ctx)

	return r.GetByUserID(ctx, userID)
}

// applyProfileInput merges only the supplied fields into the profile.
func applyProfileInput(profile *models.Profile, input *ProfileInput) {
	if input.Company != "" {
		profile.Company = input.Company
	}
	if input.Website != "" {
		profile.Website = input.Website
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Status != "" {
		profile.Status = input.Status
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.GithubUsername != "" {
		profile.GithubUsername = input.GithubUsername
	}
	if input.Skills != "" {
		profile.Skills = models.ParseSkills(input.Skills)
	}
	if input.Youtube != "" {
		profile.Social.Youtube = input.Youtube
	}
	if input.Facebook != "" {
		profile.Social.Facebook = input.Facebook
	}
	if input.Twitter != "" {
		profile.Social.Twitter = input.Twitter
	}
	if input.Instagram != "" {
		profile.Social.Instagram = input.Instagram
	}
	if input.Linkedin != "" {
		profile.Social.Linkedin = input.Linkedin
	}
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, entry *models.Experience) (*models.Profile, error) {
	profile, err := r.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfileList(ctx)

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := r.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Experience entry not found")
	}
	cache.InvalidateProfileList(ctx)

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, entry *models.Education) (*models.Profile, error) {
	profile, err := r.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfileList(ctx)

	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := r.profileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Education entry not found")
	}
	cache.InvalidateProfileList(ctx)

	return r.GetByUserID(ctx, userID)
}

// profileForUpdate loads the bare profile row for a sub-list mutation.
func (r *profileRepository) profileForUpdate(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("No profile found for the user")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// DeleteAccount removes the user's posts (with their likes and comments),
// the profile with its sub-lists, and finally the user record, all in one
// transaction. Irreversible.
func (r *profileRepository) DeleteAccount(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfileList(ctx)
	return nil
}

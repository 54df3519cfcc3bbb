package repository

import (
	"context"
	"errors"

	"anoa.com/learnquest/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	// FindByUserID returns nil, nil when the user has no profile yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	// CreateIfMissing inserts the profile unless a row for the user exists.
	CreateIfMissing(ctx context.Context, profile *entity.Profile) error
	// AddXP increments xp_total and returns the new total.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (int, error)
	UpdateProgress(ctx context.Context, userID uuid.UUID, level int, tier string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).
		Select("user_id", "display_name", "xp_total", "current_tier", "level", "role").
		Where("user_id = ?", userID).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CreateIfMissing(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(profile).Error
}

func (r *profileRepository) AddXP(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	var profile entity.Profile
	result := r.db.WithContext(ctx).
		Model(&profile).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "xp_total"}}}).
		Where("user_id = ?", userID).
		Update("xp_total", gorm.Expr("xp_total + ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return profile.XPTotal, nil
}

func (r *profileRepository) UpdateProgress(ctx context.Context, userID uuid.UUID, level int, tier string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"level":        level,
			"current_tier": tier,
		}).Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/learnquest/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	// FindRecentByUserID returns the user's badges, newest first, with their definitions.
	FindRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.UserBadge, error)
	// FindDefinitionByKey returns nil, nil for an unknown key.
	FindDefinitionByKey(ctx context.Context, key string) (*entity.BadgeDefinition, error)
	// Award reports false when the user already held the badge.
	Award(ctx context.Context, userID uuid.UUID, definitionID uint, earnedAt time.Time) (bool, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) FindRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.UserBadge, error) {
	var badges []entity.UserBadge
	err := r.db.WithContext(ctx).
		Preload("BadgeDefinition").
		Where("user_id = ?", userID).
		Order("earned_at DESC NULLS LAST").
		Limit(limit).
		Find(&badges).Error
	return badges, err
}

func (r *badgeRepository) FindDefinitionByKey(ctx context.Context, key string) (*entity.BadgeDefinition, error) {
	var def entity.BadgeDefinition
	err := r.db.WithContext(ctx).Where("badge_key = ?", key).Take(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &def, nil
}

func (r *badgeRepository) Award(ctx context.Context, userID uuid.UUID, definitionID uint, earnedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_definition_id"}},
			DoNothing: true,
		}).
		Create(&entity.UserBadge{
			UserID:            userID,
			BadgeDefinitionID: definitionID,
			EarnedAt:          &earnedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

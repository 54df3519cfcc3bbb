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

type StreakRepository interface {
	// FindByUserID returns nil, nil when the user has no streak row yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Streak, error)
	CreateIfMissing(ctx context.Context, streak *entity.Streak) error
	// Claim writes streak only if its row was not already completed on or after
	// today. It reports false when a concurrent claim got there first.
	Claim(ctx context.Context, streak *entity.Streak, today time.Time) (bool, error)
	// ResetLapsed zeroes current_streak for rows last completed before cutoff.
	ResetLapsed(ctx context.Context, cutoff time.Time) (int64, error)
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Streak, error) {
	var streak entity.Streak
	err := r.db.WithContext(ctx).
		Select("user_id", "current_streak", "longest_streak", "last_completed_date").
		Where("user_id = ?", userID).
		Take(&streak).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepository) CreateIfMissing(ctx context.Context, streak *entity.Streak) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(streak).Error
}

func (r *streakRepository) Claim(ctx context.Context, streak *entity.Streak, today time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_streak", "longest_streak", "last_completed_date", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{
					SQL:  "streaks.last_completed_date IS NULL OR streaks.last_completed_date < ?",
					Vars: []interface{}{today},
				},
			}},
		}).
		Create(streak)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *streakRepository) ResetLapsed(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Streak{}).
		Where("current_streak > 0 AND (last_completed_date IS NULL OR last_completed_date < ?)", cutoff).
		Update("current_streak", 0)
	return result.RowsAffected, result.Error
}

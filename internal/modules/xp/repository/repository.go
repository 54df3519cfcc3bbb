package repository

import (
	"context"
	"time"

	"anoa.com/learnquest/internal/entity"
	profileRepo "anoa.com/learnquest/internal/modules/profile/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressFunc derives level and tier from a new xp total.
type ProgressFunc func(xpTotal int) (level int, tier string)

type XPRepository interface {
	// RecordAward writes the ledger row, increments profiles.xp_total and stores
	// the progress for the new total in one transaction. It returns the new total,
	// or gorm.ErrRecordNotFound when the user has no profile.
	RecordAward(ctx context.Context, tx *entity.XPTransaction, progress ProgressFunc) (int, error)
	// CountBySourceSince counts the user's transactions of source created at or after since.
	CountBySourceSince(ctx context.Context, userID uuid.UUID, source string, since time.Time) (int64, error)
}

type xpRepository struct {
	db *gorm.DB
}

func NewXPRepository(db *gorm.DB) XPRepository {
	return &xpRepository{db: db}
}

func (r *xpRepository) RecordAward(ctx context.Context, row *entity.XPTransaction, progress ProgressFunc) (int, error) {
	var newTotal int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		profiles := profileRepo.NewProfileRepository(tx)
		total, err := profiles.AddXP(ctx, row.UserID, row.Amount)
		if err != nil {
			return err
		}

		level, tier := progress(total)
		if err := profiles.UpdateProgress(ctx, row.UserID, level, tier); err != nil {
			return err
		}

		newTotal = total
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newTotal, nil
}

func (r *xpRepository) CountBySourceSince(ctx context.Context, userID uuid.UUID, source string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.XPTransaction{}).
		Where("user_id = ? AND source = ? AND created_at >= ?", userID, source, since).
		Count(&count).Error
	return count, err
}

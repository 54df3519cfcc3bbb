package repository

import (
	"context"
	"errors"

	"anoa.com/learnquest/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	// FindActiveSeason returns the newest season without an end date, or nil.
	FindActiveSeason(ctx context.Context) (*entity.LeaderboardSeason, error)
	// FindLowestRank returns the highest rank number in use; ok is false for an empty season.
	FindLowestRank(ctx context.Context, seasonID uint) (rank int, ok bool, err error)
	// CreateEntryIfMissing inserts entry and leaves an existing (season, user) row untouched.
	CreateEntryIfMissing(ctx context.Context, entry *entity.SeasonLeaderboardEntry) error
	AddXP(ctx context.Context, seasonID uint, userID uuid.UUID, amount int) (bool, error)
	FindTopEntries(ctx context.Context, seasonID uint, limit int) ([]entity.SeasonLeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) FindActiveSeason(ctx context.Context) (*entity.LeaderboardSeason, error) {
	var season entity.LeaderboardSeason
	err := r.db.WithContext(ctx).
		Where("ends_at IS NULL").
		Order("starts_at DESC").
		Take(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &season, nil
}

func (r *leaderboardRepository) FindLowestRank(ctx context.Context, seasonID uint) (int, bool, error) {
	var entry entity.SeasonLeaderboardEntry
	err := r.db.WithContext(ctx).
		Select("rank").
		Where("season_id = ?", seasonID).
		Order("rank DESC").
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return entry.Rank, true, nil
}

func (r *leaderboardRepository) CreateEntryIfMissing(ctx context.Context, entry *entity.SeasonLeaderboardEntry) error {
	return r.db.WithContext(ctx).
		Omit("Profile").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "season_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

func (r *leaderboardRepository) AddXP(ctx context.Context, seasonID uint, userID uuid.UUID, amount int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.SeasonLeaderboardEntry{}).
		Where("season_id = ? AND user_id = ?", seasonID, userID).
		Update("xp_total", gorm.Expr("xp_total + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *leaderboardRepository) FindTopEntries(ctx context.Context, seasonID uint, limit int) ([]entity.SeasonLeaderboardEntry, error) {
	var entries []entity.SeasonLeaderboardEntry
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("season_id = ?", seasonID).
		Order("xp_total DESC").
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

package bootstrap

import (
	"time"

	"anoa.com/learnquest/internal/entity"
	"anoa.com/learnquest/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Profile{},
		&entity.Streak{},
		&entity.BadgeDefinition{},
		&entity.UserBadge{},
		&entity.LeaderboardSeason{},
		&entity.SeasonLeaderboardEntry{},
		&entity.XPTransaction{},
	)
}

// DefaultBadgeDefinitions returns the badges the services award by key.
func DefaultBadgeDefinitions() []entity.BadgeDefinition {
	return []entity.BadgeDefinition{
		{BadgeKey: "bronze_tier", BadgeName: "Bronze Achiever", BadgeIcon: stringPtr("🥉"), Description: "Joined the platform"},
		{BadgeKey: "silver_tier", BadgeName: "Silver Achiever", BadgeIcon: stringPtr("🥈"), Description: "Reached the Silver tier"},
		{BadgeKey: "gold_tier", BadgeName: "Gold Achiever", BadgeIcon: stringPtr("🥇"), Description: "Reached the Gold tier"},
		{BadgeKey: "platinum_tier", BadgeName: "Platinum Achiever", BadgeIcon: stringPtr("🏆"), Description: "Reached the Platinum tier"},
		{BadgeKey: "diamond_tier", BadgeName: "Diamond Achiever", BadgeIcon: stringPtr("💎"), Description: "Reached the Diamond tier"},
		{BadgeKey: "master_tier", BadgeName: "Master", BadgeIcon: stringPtr("👑"), Description: "Reached the Master tier"},
		{BadgeKey: "streak_7", BadgeName: "Week Warrior", BadgeIcon: stringPtr("🔥"), Description: "Kept a 7 day streak"},
		{BadgeKey: "streak_30", BadgeName: "Unstoppable", BadgeIcon: stringPtr("⚡"), Description: "Kept a 30 day streak"},
	}
}

func SeedBadgeDefinitions(db *gorm.DB) error {
	defs := DefaultBadgeDefinitions()
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "badge_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"badge_name", "badge_icon", "description"}),
	}).Create(&defs)
	if result.Error != nil {
		return result.Error
	}
	logger.Log.Infow("badge definitions seeded", "count", len(defs))
	return nil
}

// SeedActiveSeason opens a season when none is active.
func SeedActiveSeason(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&entity.LeaderboardSeason{}).
		Where("ends_at IS NULL").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	season := entity.LeaderboardSeason{
		Name:     "Season " + now.UTC().Format("2006-01"),
		StartsAt: now.UTC(),
	}
	if err := db.Create(&season).Error; err != nil {
		return err
	}

	logger.Log.Infow("✅ leaderboard season opened", "season", season.Name)
	return nil
}

func stringPtr(s string) *string {
	return &s
}

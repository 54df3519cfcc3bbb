package entity

import (
	"time"

	"github.com/google/uuid"
)

type BadgeDefinition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BadgeKey    string    `gorm:"size:50;uniqueIndex;not null" json:"badge_key"`
	BadgeName   string    `gorm:"size:100;not null" json:"badge_name"`
	BadgeIcon   *string   `gorm:"size:16" json:"badge_icon"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BadgeDefinition) TableName() string {
	return "badge_definitions"
}

// UserBadge records one earned badge; a user earns each definition at most once.
type UserBadge struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeDefinitionID uint            `gorm:"not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_definition_id"`
	BadgeDefinition   BadgeDefinition `gorm:"foreignKey:BadgeDefinitionID;constraint:OnDelete:CASCADE" json:"badge_definition"`
	EarnedAt          *time.Time      `gorm:"index" json:"earned_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// LeaderboardSeason is active while EndsAt is NULL.
type LeaderboardSeason struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"size:100;not null" json:"name"`
	StartsAt time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (LeaderboardSeason) TableName() string {
	return "leaderboard_seasons"
}

type SeasonLeaderboardEntry struct {
	SeasonID  uint      `gorm:"primaryKey" json:"season_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Profile   Profile   `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Rank      int       `gorm:"not null" json:"rank"`
	XPTotal   int       `gorm:"column:xp_total;not null;default:0" json:"xp_total"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SeasonLeaderboardEntry) TableName() string {
	return "season_leaderboard_entries"
}

// XPTransaction is the append-only ledger behind profiles.xp_total.
type XPTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_xp_user_source_date,priority:1" json:"user_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	Source      string    `gorm:"size:30;not null;index:idx_xp_user_source_date,priority:2" json:"source"` // 'module', 'streak'
	ReferenceID string    `gorm:"size:64" json:"reference_id"`
	CreatedAt   time.Time `gorm:"index:idx_xp_user_source_date,priority:3" json:"created_at"`
}

func (XPTransaction) TableName() string {
	return "xp_transactions"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// Profile is the gamification profile keyed by the Supabase auth user id.
type Profile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DisplayName string    `gorm:"size:120;not null" json:"display_name"`
	XPTotal     int       `gorm:"column:xp_total;not null;default:0" json:"xp_total"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	CurrentTier string    `gorm:"size:30;not null;default:'Bronze'" json:"current_tier"`
	Role        string    `gorm:"size:30;not null;default:'student'" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Streak counts consecutive UTC days with a claimed activity.
type Streak struct {
	UserID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	CurrentStreak     int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak     int        `gorm:"not null;default:0" json:"longest_streak"`
	LastCompletedDate *time.Time `gorm:"type:date" json:"last_completed_date"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Streak) TableName() string {
	return "streaks"
}

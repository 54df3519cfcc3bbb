package dto

import badgeDto "anoa.com/learnquest/internal/modules/badge/dto"

type XPStats struct {
	Total               int     `json:"total"`
	Tier                string  `json:"tier"`
	NextTier            *string `json:"nextTier"`
	XPIntoTier          int     `json:"xpIntoTier"`
	XPToNextTier        int     `json:"xpToNextTier"`
	XPNeededForNextTier int     `json:"xpNeededForNextTier"`
	PercentToNextTier   float64 `json:"percentToNextTier"`
}

type StreakStats struct {
	Current           int     `json:"current"`
	Longest           int     `json:"longest"`
	LastCompletedDate *string `json:"lastCompletedDate"`
	ClaimedToday      bool    `json:"claimedToday"`
}

// UserStatsResponse is the payload of GET /api/user/stats.
type UserStatsResponse struct {
	XP               XPStats                  `json:"xp"`
	Streak           StreakStats              `json:"streak"`
	SubmissionsToday int64                    `json:"submissionsToday"`
	ReviewQueueCount int                      `json:"reviewQueueCount"`
	RecentBadges     []badgeDto.BadgeResponse `json:"recentBadges"`
}

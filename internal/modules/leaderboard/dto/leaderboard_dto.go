package dto

import "github.com/google/uuid"

// LeaderboardEntry represents a single user entry in the season leaderboard.
// Position is the ordering by season XP (1-based); JoinRank is the order in
// which the user entered the season.
type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Tier        string    `json:"tier"`
	Position    int       `json:"position"`
	JoinRank    int       `json:"join_rank"`
	SeasonXP    int       `json:"season_xp"`
}

type LeaderboardResponse struct {
	SeasonID   *uint              `json:"season_id"`
	SeasonName string             `json:"season_name"`
	Entries    []LeaderboardEntry `json:"entries"`
}

type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

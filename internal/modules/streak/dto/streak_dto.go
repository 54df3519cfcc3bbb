package dto

import xpDto "anoa.com/learnquest/internal/modules/xp/dto"

type ClaimResponse struct {
	Current           int                `json:"current"`
	Longest           int                `json:"longest"`
	LastCompletedDate string             `json:"lastCompletedDate"`
	BadgesEarned      []string           `json:"badgesEarned"`
	XP                *xpDto.AwardResult `json:"xp,omitempty"`
}

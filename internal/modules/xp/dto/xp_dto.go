package dto

// AwardResult summarizes one XP award.
type AwardResult struct {
	Source      string `json:"source"`
	Awarded     int    `json:"awarded"`
	XPTotal     int    `json:"xp_total"`
	Level       int    `json:"level"`
	Tier        string `json:"tier"`
	TierChanged bool   `json:"tier_changed"`
}

type CompleteModuleRequest struct {
	ModuleID string `uri:"module_id" binding:"required,max=64"`
}

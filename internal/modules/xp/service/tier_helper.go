package service

import "math"

// Tier is a named XP bracket starting at MinXP.
type Tier struct {
	Name  string `json:"name"`
	MinXP int    `json:"min_xp"`
}

// Tier thresholds, ascending. A tier never demotes because xp_total only grows.
var Tiers = []Tier{
	{Name: "Bronze", MinXP: 0},     // 🥉
	{Name: "Silver", MinXP: 500},   // 🥈
	{Name: "Gold", MinXP: 1500},    // 🥇
	{Name: "Platinum", MinXP: 3500},
	{Name: "Diamond", MinXP: 7500}, // 💎
	{Name: "Master", MinXP: 15000}, // 👑
}

// XPPerLevel is the size of one level; levels are finer grained than tiers.
const XPPerLevel = 250

// TierProgress describes where an XP total sits inside its tier.
type TierProgress struct {
	CurrentTier         Tier
	NextTier            *Tier // nil at the top tier
	XPIntoTier          int
	XPToNextTier        int
	XPNeededForNextTier int     // width of the current tier
	Percent             float64 // 0-100, unrounded
}

// TierForXP returns the highest tier whose threshold xp has reached.
func TierForXP(xp int) Tier {
	current := Tiers[0]
	for _, tier := range Tiers {
		if xp >= tier.MinXP {
			current = tier
		}
	}
	return current
}

// LevelForXP returns the 1-based level for an XP total.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// GetProgressToNextTier calculates the tier progress for an XP total.
func GetProgressToNextTier(xp int) TierProgress {
	if xp < 0 {
		xp = 0
	}

	idx := 0
	for i, tier := range Tiers {
		if xp >= tier.MinXP {
			idx = i
		}
	}

	progress := TierProgress{
		CurrentTier: Tiers[idx],
		XPIntoTier:  xp - Tiers[idx].MinXP,
	}

	if idx == len(Tiers)-1 {
		progress.Percent = 100
		return progress
	}

	next := Tiers[idx+1]
	progress.NextTier = &next
	progress.XPNeededForNextTier = next.MinXP - progress.CurrentTier.MinXP
	progress.XPToNextTier = next.MinXP - xp
	progress.Percent = float64(progress.XPIntoTier) / float64(progress.XPNeededForNextTier) * 100

	return progress
}

// RoundPercent rounds to two decimal places.
func RoundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}

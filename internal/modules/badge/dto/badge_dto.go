package dto

import "time"

// BadgeResponse is the flattened badge shape returned to clients.
// EarnedAt is nil for badges granted by fallback logic rather than the database.
type BadgeResponse struct {
	BadgeKey  string     `json:"badge_key"`
	BadgeName string     `json:"badge_name"`
	BadgeIcon *string    `json:"badge_icon"`
	EarnedAt  *time.Time `json:"earned_at"`
}

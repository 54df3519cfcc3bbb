package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeTierUp      = "tier_up"
	TypeBadgeEarned = "badge_earned"
)

// Event is pushed to the user's open websocket connections.
type Event struct {
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Tier      string    `json:"tier,omitempty"`
	XPTotal   int       `json:"xp_total,omitempty"`
	BadgeKey  string    `json:"badge_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

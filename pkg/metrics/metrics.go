package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "method"},
	)
)

// Gamification Metrics
var (
	// ProfileInitializationsTotal counts lazily created profile/streak rows
	ProfileInitializationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_profile_initializations_total",
			Help: "Users whose profile or streak was created on first stats read",
		},
	)

	XPAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_xp_awarded_total",
			Help: "Total XP awarded by source",
		},
		[]string{"source"},
	)

	TierUpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_tier_ups_total",
			Help: "Tier promotions by new tier",
		},
		[]string{"tier"},
	)

	StreakResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_streak_resets_total",
			Help: "Streaks zeroed by the nightly reset job",
		},
	)

	LeaderboardCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_lookups_total",
			Help: "Leaderboard cache lookups by result (hit/miss/error)",
		},
		[]string{"result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_notifications_total",
			Help: "Notifications emitted by event type",
		},
		[]string{"type"},
	)
)

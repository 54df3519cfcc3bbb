package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/learnquest/internal/entity"
	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	xpDto "anoa.com/learnquest/internal/modules/xp/dto"
	xpRepo "anoa.com/learnquest/internal/modules/xp/repository"
	"anoa.com/learnquest/pkg/apperror"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

const (
	SourceModule = "module"
	SourceStreak = "streak"

	XPModuleCompleted = 50
	XPStreakClaimed   = 10

	MaxDailyModuleAwards = 20
)

var ErrDailyCapReached = fmt.Errorf("daily module xp cap reached: %w", apperror.ErrRateLimitExceeded)

// SeasonLedger credits XP to the active leaderboard season.
type SeasonLedger interface {
	AddXP(ctx context.Context, userID uuid.UUID, amount int) error
}

// BadgeAwarder grants badges by key.
type BadgeAwarder interface {
	AwardByKey(ctx context.Context, userID uuid.UUID, badgeKey string) (bool, error)
}

// Notifier pushes events to the user's live connections.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event notificationDto.Event)
}

type XPService interface {
	Award(ctx context.Context, userID uuid.UUID, source, referenceID string) (*xpDto.AwardResult, error)
	// CountToday counts the user's transactions of source since UTC midnight.
	CountToday(ctx context.Context, userID uuid.UUID, source string) (int64, error)
}

type xpService struct {
	repo     xpRepo.XPRepository
	season   SeasonLedger
	badges   BadgeAwarder
	notifier Notifier
	clock    clockwork.Clock
}

func NewXPService(repo xpRepo.XPRepository, season SeasonLedger, badges BadgeAwarder, notifier Notifier, clock clockwork.Clock) XPService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &xpService{
		repo:     repo,
		season:   season,
		badges:   badges,
		notifier: notifier,
		clock:    clock,
	}
}

// StartOfDayUTC truncates t to midnight UTC.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TierBadgeKey is the badge granted on reaching a tier, e.g. "gold_tier".
func TierBadgeKey(tier string) string {
	return strings.ToLower(tier) + "_tier"
}

func progressFor(xpTotal int) (int, string) {
	return LevelForXP(xpTotal), TierForXP(xpTotal).Name
}

func pointsFor(source string) (int, bool) {
	switch source {
	case SourceModule:
		return XPModuleCompleted, true
	case SourceStreak:
		return XPStreakClaimed, true
	default:
		return 0, false
	}
}

func (s *xpService) CountToday(ctx context.Context, userID uuid.UUID, source string) (int64, error) {
	return s.repo.CountBySourceSince(ctx, userID, source, StartOfDayUTC(s.clock.Now()))
}

func (s *xpService) Award(ctx context.Context, userID uuid.UUID, source, referenceID string) (*xpDto.AwardResult, error) {
	points, ok := pointsFor(source)
	if !ok {
		return nil, fmt.Errorf("unknown xp source %q: %w", source, apperror.ErrInvalidInput)
	}

	if source == SourceModule {
		count, err := s.CountToday(ctx, userID, source)
		if err != nil {
			return nil, apperror.Internal("Failed to count today's submissions", err)
		}
		if count >= MaxDailyModuleAwards {
			logger.Log.Infow("daily module xp cap reached", "user_id", userID)
			return nil, ErrDailyCapReached
		}
	}

	newTotal, err := s.repo.RecordAward(ctx, &entity.XPTransaction{
		UserID:      userID,
		Amount:      points,
		Source:      source,
		ReferenceID: referenceID,
		CreatedAt:   s.clock.Now().UTC(),
	}, progressFor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile not initialized: %w", apperror.ErrNotFound)
		}
		return nil, apperror.Internal("Failed to record xp award", err)
	}
	metrics.XPAwardedTotal.WithLabelValues(source).Add(float64(points))

	previousTier := TierForXP(newTotal - points).Name
	newTier := TierForXP(newTotal).Name
	result := &xpDto.AwardResult{
		Source:      source,
		Awarded:     points,
		XPTotal:     newTotal,
		Level:       LevelForXP(newTotal),
		Tier:        newTier,
		TierChanged: newTier != previousTier,
	}

	if result.TierChanged {
		metrics.TierUpsTotal.WithLabelValues(newTier).Inc()
		logger.Log.Infow("🎉 tier up", "user_id", userID, "from", previousTier, "to", newTier, "xp", newTotal)
		if s.notifier != nil {
			s.notifier.Notify(ctx, userID, notificationDto.Event{
				Type:      notificationDto.TypeTierUp,
				UserID:    userID,
				Message:   fmt.Sprintf("You reached %s tier!", newTier),
				Tier:      newTier,
				XPTotal:   newTotal,
				CreatedAt: s.clock.Now().UTC(),
			})
		}
		if s.badges != nil {
			if _, err := s.badges.AwardByKey(ctx, userID, TierBadgeKey(newTier)); err != nil {
				logger.Log.Warnw("failed to award tier badge", "user_id", userID, "tier", newTier, "error", err)
			}
		}
	}

	if s.season != nil {
		if err := s.season.AddXP(ctx, userID, points); err != nil {
			logger.Log.Warnw("failed to credit season xp", "user_id", userID, "error", err)
		}
	}

	return result, nil
}

package service

import (
	"context"
	"fmt"

	"anoa.com/learnquest/internal/entity"
	badgeDto "anoa.com/learnquest/internal/modules/badge/dto"
	badgeRepo "anoa.com/learnquest/internal/modules/badge/repository"
	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	"anoa.com/learnquest/pkg/logger"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	RecentBadgeLimit = 5

	BadgeKeyBronzeTier = "bronze_tier"
	BadgeKeyStreak7    = "streak_7"
	BadgeKeyStreak30   = "streak_30"
)

var bronzeIcon = "🥉"

// DefaultBronzeBadge is shown to every user, whether or not it was ever awarded.
var DefaultBronzeBadge = badgeDto.BadgeResponse{
	BadgeKey:  BadgeKeyBronzeTier,
	BadgeName: "Bronze Achiever",
	BadgeIcon: &bronzeIcon,
	EarnedAt:  nil,
}

type BadgeService interface {
	// RecentBadges returns the bronze badge followed by the user's most recent badges.
	RecentBadges(ctx context.Context, userID uuid.UUID) ([]badgeDto.BadgeResponse, error)
	// AwardByKey grants a badge once; it reports whether a new badge was granted.
	AwardByKey(ctx context.Context, userID uuid.UUID, badgeKey string) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event notificationDto.Event)
}

type badgeService struct {
	repo     badgeRepo.BadgeRepository
	notifier Notifier
	clock    clockwork.Clock
}

func NewBadgeService(repo badgeRepo.BadgeRepository, notifier Notifier, clock clockwork.Clock) BadgeService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &badgeService{repo: repo, notifier: notifier, clock: clock}
}

func (s *badgeService) RecentBadges(ctx context.Context, userID uuid.UUID) ([]badgeDto.BadgeResponse, error) {
	rows, err := s.repo.FindRecentByUserID(ctx, userID, RecentBadgeLimit)
	if err != nil {
		return nil, err
	}
	return MergeWithDefaultBadge(rows), nil
}

func (s *badgeService) AwardByKey(ctx context.Context, userID uuid.UUID, badgeKey string) (bool, error) {
	def, err := s.repo.FindDefinitionByKey(ctx, badgeKey)
	if err != nil {
		return false, err
	}
	if def == nil {
		return false, fmt.Errorf("badge definition %q not found", badgeKey)
	}

	now := s.clock.Now().UTC()
	awarded, err := s.repo.Award(ctx, userID, def.ID, now)
	if err != nil {
		return false, err
	}
	if awarded {
		logger.Log.Infow("🏅 badge awarded", "user_id", userID, "badge", badgeKey)
		if s.notifier != nil {
			s.notifier.Notify(ctx, userID, notificationDto.Event{
				Type:      notificationDto.TypeBadgeEarned,
				UserID:    userID,
				Message:   fmt.Sprintf("You earned the %s badge!", def.BadgeName),
				BadgeKey:  badgeKey,
				CreatedAt: now,
			})
		}
	}
	return awarded, nil
}

// MergeWithDefaultBadge puts the bronze badge first, then the database badges in
// their given order, skipping rows without a key and keys already seen.
func MergeWithDefaultBadge(rows []entity.UserBadge) []badgeDto.BadgeResponse {
	seen := map[string]struct{}{DefaultBronzeBadge.BadgeKey: {}}
	badges := make([]badgeDto.BadgeResponse, 0, len(rows)+1)
	badges = append(badges, DefaultBronzeBadge)

	for _, row := range rows {
		key := row.BadgeDefinition.BadgeKey
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		badges = append(badges, badgeDto.BadgeResponse{
			BadgeKey:  key,
			BadgeName: row.BadgeDefinition.BadgeName,
			BadgeIcon: row.BadgeDefinition.BadgeIcon,
			EarnedAt:  row.EarnedAt,
		})
	}

	return badges
}

package service

import (
	"context"
	"fmt"

	"anoa.com/learnquest/internal/entity"
	badgeService "anoa.com/learnquest/internal/modules/badge/service"
	streakDto "anoa.com/learnquest/internal/modules/streak/dto"
	streakRepo "anoa.com/learnquest/internal/modules/streak/repository"
	xpService "anoa.com/learnquest/internal/modules/xp/service"
	"anoa.com/learnquest/pkg/apperror"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var ErrAlreadyClaimed = fmt.Errorf("streak already claimed today: %w", apperror.ErrConflict)

// Streak milestones and the badge each one grants.
var milestones = []struct {
	days     int
	badgeKey string
}{
	{7, badgeService.BadgeKeyStreak7},
	{30, badgeService.BadgeKeyStreak30},
}

type StreakService interface {
	Claim(ctx context.Context, userID uuid.UUID) (*streakDto.ClaimResponse, error)
	// ResetLapsed zeroes streaks that missed yesterday.
	ResetLapsed(ctx context.Context) (int64, error)
}

type streakService struct {
	repo   streakRepo.StreakRepository
	xp     xpService.XPService
	badges badgeService.BadgeService
	clock  clockwork.Clock
}

func NewStreakService(repo streakRepo.StreakRepository, xp xpService.XPService, badges badgeService.BadgeService, clock clockwork.Clock) StreakService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &streakService{
		repo:   repo,
		xp:     xp,
		badges: badges,
		clock:  clock,
	}
}

func (s *streakService) Claim(ctx context.Context, userID uuid.UUID) (*streakDto.ClaimResponse, error) {
	current, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to load streak", err)
	}
	if current == nil {
		current = &entity.Streak{UserID: userID}
	}

	today := xpService.StartOfDayUTC(s.clock.Now())
	next, ok := NextStreak(*current, today)
	if !ok {
		return nil, ErrAlreadyClaimed
	}

	claimed, err := s.repo.Claim(ctx, &next, today)
	if err != nil {
		return nil, apperror.Internal("Failed to save streak", err)
	}
	if !claimed {
		logger.Log.Infow("concurrent streak claim rejected", "user_id", userID)
		return nil, ErrAlreadyClaimed
	}

	resp := &streakDto.ClaimResponse{
		Current:           next.CurrentStreak,
		Longest:           next.LongestStreak,
		LastCompletedDate: *FormatDate(next.LastCompletedDate),
		BadgesEarned:      []string{},
	}

	if s.xp != nil {
		award, err := s.xp.Award(ctx, userID, xpService.SourceStreak, resp.LastCompletedDate)
		if err != nil {
			logger.Log.Warnw("failed to award streak xp", "user_id", userID, "error", err)
		} else {
			resp.XP = award
		}
	}

	if s.badges != nil {
		for _, m := range milestones {
			if next.CurrentStreak < m.days {
				continue
			}
			awarded, err := s.badges.AwardByKey(ctx, userID, m.badgeKey)
			if err != nil {
				logger.Log.Warnw("failed to award streak badge", "user_id", userID, "badge", m.badgeKey, "error", err)
				continue
			}
			if awarded {
				resp.BadgesEarned = append(resp.BadgesEarned, m.badgeKey)
			}
		}
	}

	return resp, nil
}

func (s *streakService) ResetLapsed(ctx context.Context) (int64, error) {
	yesterday := xpService.StartOfDayUTC(s.clock.Now()).AddDate(0, 0, -1)
	n, err := s.repo.ResetLapsed(ctx, yesterday)
	if err != nil {
		return 0, err
	}
	metrics.StreakResetsTotal.Add(float64(n))
	return n, nil
}

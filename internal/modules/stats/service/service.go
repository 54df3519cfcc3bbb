package service

import (
	"context"
	"strings"

	"anoa.com/learnquest/internal/entity"
	badgeService "anoa.com/learnquest/internal/modules/badge/service"
	leaderboardService "anoa.com/learnquest/internal/modules/leaderboard/service"
	profileRepo "anoa.com/learnquest/internal/modules/profile/repository"
	statsDto "anoa.com/learnquest/internal/modules/stats/dto"
	streakRepo "anoa.com/learnquest/internal/modules/streak/repository"
	streakService "anoa.com/learnquest/internal/modules/streak/service"
	xpService "anoa.com/learnquest/internal/modules/xp/service"
	"anoa.com/learnquest/pkg/apperror"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/metrics"
	"anoa.com/learnquest/pkg/supabase"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

// ReviewQueueCount stays zero until review queue storage exists.
const ReviewQueueCount = 0

type StatsService interface {
	GetUserStats(ctx context.Context, user *supabase.User) (*statsDto.UserStatsResponse, error)
}

type statsService struct {
	profileRepo profileRepo.ProfileRepository
	streakRepo  streakRepo.StreakRepository
	xp          xpService.XPService
	badges      badgeService.BadgeService
	leaderboard leaderboardService.LeaderboardService
	clock       clockwork.Clock
	sanitizer   *bluemonday.Policy
}

func NewStatsService(
	profileRepo profileRepo.ProfileRepository,
	streakRepo streakRepo.StreakRepository,
	xp xpService.XPService,
	badges badgeService.BadgeService,
	leaderboard leaderboardService.LeaderboardService,
	clock clockwork.Clock,
) StatsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &statsService{
		profileRepo: profileRepo,
		streakRepo:  streakRepo,
		xp:          xp,
		badges:      badges,
		leaderboard: leaderboard,
		clock:       clock,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *statsService) loadState(ctx context.Context, userID uuid.UUID) (*entity.Profile, *entity.Streak, error) {
	var (
		profile *entity.Profile
		streak  *entity.Streak
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profileRepo.FindByUserID(gctx, userID)
		if err != nil {
			return apperror.Internal("Failed to load profile", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		st, err := s.streakRepo.FindByUserID(gctx, userID)
		if err != nil {
			return apperror.Internal("Failed to load streak", err)
		}
		streak = st
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, streak, nil
}

// initialize creates whichever of profile and streak is missing, enrolls the
// user in the active season and reloads both rows.
func (s *statsService) initialize(ctx context.Context, user *supabase.User, profile *entity.Profile, streak *entity.Streak) (*entity.Profile, *entity.Streak, error) {
	metrics.ProfileInitializationsTotal.Inc()

	if profile == nil {
		if err := s.profileRepo.CreateIfMissing(ctx, &entity.Profile{
			UserID:      user.ID,
			DisplayName: s.displayName(user),
			XPTotal:     0,
			Level:       1,
			CurrentTier: xpService.Tiers[0].Name,
			Role:        entity.RoleStudent,
		}); err != nil {
			return nil, nil, apperror.Internal("Failed to initialize profile", err)
		}
	}

	if streak == nil {
		if err := s.streakRepo.CreateIfMissing(ctx, &entity.Streak{
			UserID:            user.ID,
			CurrentStreak:     0,
			LongestStreak:     0,
			LastCompletedDate: nil,
		}); err != nil {
			return nil, nil, apperror.Internal("Failed to initialize streak", err)
		}
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Enroll(ctx, user.ID); err != nil {
			logger.Log.Errorw("failed to add user to leaderboard", "user_id", user.ID, "error", err)
		}
	}

	logger.Log.Infow("initialized gamification state", "user_id", user.ID)
	return s.loadState(ctx, user.ID)
}

// displayName picks the first of full_name and email that survives sanitizing.
func (s *statsService) displayName(user *supabase.User) string {
	for _, candidate := range []string{user.FullName(), user.Email} {
		if name := strings.TrimSpace(s.sanitizer.Sanitize(candidate)); name != "" {
			return name
		}
	}
	return "Student"
}

func (s *statsService) GetUserStats(ctx context.Context, user *supabase.User) (*statsDto.UserStatsResponse, error) {
	if user == nil {
		return nil, apperror.Unauthorized("Invalid authentication token")
	}

	profile, streak, err := s.loadState(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if profile == nil || streak == nil {
		profile, streak, err = s.initialize(ctx, user, profile, streak)
		if err != nil {
			return nil, err
		}
	}

	xpTotal := 0
	if profile != nil {
		xpTotal = profile.XPTotal
	}
	progress := xpService.GetProgressToNextTier(xpTotal)

	var nextTier *string
	if progress.NextTier != nil {
		name := progress.NextTier.Name
		nextTier = &name
	}

	submissionsToday, err := s.xp.CountToday(ctx, user.ID, xpService.SourceModule)
	if err != nil {
		return nil, apperror.Internal("Failed to count submissions", err)
	}

	recentBadges, err := s.badges.RecentBadges(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal("Failed to load badges", err)
	}

	resp := &statsDto.UserStatsResponse{
		XP: statsDto.XPStats{
			Total:               xpTotal,
			Tier:                progress.CurrentTier.Name,
			NextTier:            nextTier,
			XPIntoTier:          progress.XPIntoTier,
			XPToNextTier:        progress.XPToNextTier,
			XPNeededForNextTier: progress.XPNeededForNextTier,
			PercentToNextTier:   xpService.RoundPercent(progress.Percent),
		},
		SubmissionsToday: submissionsToday,
		ReviewQueueCount: ReviewQueueCount,
		RecentBadges:     recentBadges,
	}

	if streak != nil {
		startOfDay := xpService.StartOfDayUTC(s.clock.Now())
		resp.Streak = statsDto.StreakStats{
			Current:           streak.CurrentStreak,
			Longest:           streak.LongestStreak,
			LastCompletedDate: streakService.FormatDate(streak.LastCompletedDate),
			ClaimedToday:      streakService.ClaimedToday(streak, startOfDay),
		}
	}

	return resp, nil
}

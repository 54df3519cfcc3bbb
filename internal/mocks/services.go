package mocks

import (
	"context"

	badgeDto "anoa.com/learnquest/internal/modules/badge/dto"
	leaderboardDto "anoa.com/learnquest/internal/modules/leaderboard/dto"
	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	notificationService "anoa.com/learnquest/internal/modules/notification/service"
	statsDto "anoa.com/learnquest/internal/modules/stats/dto"
	streakDto "anoa.com/learnquest/internal/modules/streak/dto"
	xpDto "anoa.com/learnquest/internal/modules/xp/dto"
	"anoa.com/learnquest/pkg/supabase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type XPService struct{ mock.Mock }

func NewXPService(t testingT) *XPService {
	m := &XPService{}
	register(&m.Mock, t)
	return m
}

func (m *XPService) Award(ctx context.Context, userID uuid.UUID, source, referenceID string) (*xpDto.AwardResult, error) {
	args := m.Called(ctx, userID, source, referenceID)
	var r *xpDto.AwardResult
	if v := args.Get(0); v != nil {
		r = v.(*xpDto.AwardResult)
	}
	return r, args.Error(1)
}

func (m *XPService) CountToday(ctx context.Context, userID uuid.UUID, source string) (int64, error) {
	args := m.Called(ctx, userID, source)
	return args.Get(0).(int64), args.Error(1)
}

type BadgeService struct{ mock.Mock }

func NewBadgeService(t testingT) *BadgeService {
	m := &BadgeService{}
	register(&m.Mock, t)
	return m
}

func (m *BadgeService) RecentBadges(ctx context.Context, userID uuid.UUID) ([]badgeDto.BadgeResponse, error) {
	args := m.Called(ctx, userID)
	var b []badgeDto.BadgeResponse
	if v := args.Get(0); v != nil {
		b = v.([]badgeDto.BadgeResponse)
	}
	return b, args.Error(1)
}

func (m *BadgeService) AwardByKey(ctx context.Context, userID uuid.UUID, badgeKey string) (bool, error) {
	args := m.Called(ctx, userID, badgeKey)
	return args.Bool(0), args.Error(1)
}

type LeaderboardService struct{ mock.Mock }

func NewLeaderboardService(t testingT) *LeaderboardService {
	m := &LeaderboardService{}
	register(&m.Mock, t)
	return m
}

func (m *LeaderboardService) Enroll(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *LeaderboardService) AddXP(ctx context.Context, userID uuid.UUID, amount int) error {
	return m.Called(ctx, userID, amount).Error(0)
}

func (m *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	args := m.Called(ctx, limit)
	var r *leaderboardDto.LeaderboardResponse
	if v := args.Get(0); v != nil {
		r = v.(*leaderboardDto.LeaderboardResponse)
	}
	return r, args.Error(1)
}

type StreakService struct{ mock.Mock }

func NewStreakService(t testingT) *StreakService {
	m := &StreakService{}
	register(&m.Mock, t)
	return m
}

func (m *StreakService) Claim(ctx context.Context, userID uuid.UUID) (*streakDto.ClaimResponse, error) {
	args := m.Called(ctx, userID)
	var r *streakDto.ClaimResponse
	if v := args.Get(0); v != nil {
		r = v.(*streakDto.ClaimResponse)
	}
	return r, args.Error(1)
}

func (m *StreakService) ResetLapsed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type StatsService struct{ mock.Mock }

func NewStatsService(t testingT) *StatsService {
	m := &StatsService{}
	register(&m.Mock, t)
	return m
}

func (m *StatsService) GetUserStats(ctx context.Context, user *supabase.User) (*statsDto.UserStatsResponse, error) {
	args := m.Called(ctx, user)
	var r *statsDto.UserStatsResponse
	if v := args.Get(0); v != nil {
		r = v.(*statsDto.UserStatsResponse)
	}
	return r, args.Error(1)
}

type NotificationService struct{ mock.Mock }

func NewNotificationService(t testingT) *NotificationService {
	m := &NotificationService{}
	register(&m.Mock, t)
	return m
}

func (m *NotificationService) Notify(ctx context.Context, userID uuid.UUID, event notificationDto.Event) {
	m.Called(ctx, userID, event)
}

func (m *NotificationService) Subscribe(ctx context.Context, userID uuid.UUID) (*notificationService.Subscription, error) {
	args := m.Called(ctx, userID)
	var s *notificationService.Subscription
	if v := args.Get(0); v != nil {
		s = v.(*notificationService.Subscription)
	}
	return s, args.Error(1)
}

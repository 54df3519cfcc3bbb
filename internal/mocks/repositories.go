package mocks

import (
	"context"
	"time"

	"anoa.com/learnquest/internal/entity"
	xpRepo "anoa.com/learnquest/internal/modules/xp/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct{ mock.Mock }

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	var p *entity.Profile
	if v := args.Get(0); v != nil {
		p = v.(*entity.Profile)
	}
	return p, args.Error(1)
}

func (m *ProfileRepository) CreateIfMissing(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) AddXP(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *ProfileRepository) UpdateProgress(ctx context.Context, userID uuid.UUID, level int, tier string) error {
	return m.Called(ctx, userID, level, tier).Error(0)
}

type StreakRepository struct{ mock.Mock }

func NewStreakRepository(t testingT) *StreakRepository {
	m := &StreakRepository{}
	register(&m.Mock, t)
	return m
}

func (m *StreakRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Streak, error) {
	args := m.Called(ctx, userID)
	var s *entity.Streak
	if v := args.Get(0); v != nil {
		s = v.(*entity.Streak)
	}
	return s, args.Error(1)
}

func (m *StreakRepository) CreateIfMissing(ctx context.Context, streak *entity.Streak) error {
	return m.Called(ctx, streak).Error(0)
}

func (m *StreakRepository) Claim(ctx context.Context, streak *entity.Streak, today time.Time) (bool, error) {
	args := m.Called(ctx, streak, today)
	return args.Bool(0), args.Error(1)
}

func (m *StreakRepository) ResetLapsed(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type BadgeRepository struct{ mock.Mock }

func NewBadgeRepository(t testingT) *BadgeRepository {
	m := &BadgeRepository{}
	register(&m.Mock, t)
	return m
}

func (m *BadgeRepository) FindRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.UserBadge, error) {
	args := m.Called(ctx, userID, limit)
	var b []entity.UserBadge
	if v := args.Get(0); v != nil {
		b = v.([]entity.UserBadge)
	}
	return b, args.Error(1)
}

func (m *BadgeRepository) FindDefinitionByKey(ctx context.Context, key string) (*entity.BadgeDefinition, error) {
	args := m.Called(ctx, key)
	var d *entity.BadgeDefinition
	if v := args.Get(0); v != nil {
		d = v.(*entity.BadgeDefinition)
	}
	return d, args.Error(1)
}

func (m *BadgeRepository) Award(ctx context.Context, userID uuid.UUID, definitionID uint, earnedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, definitionID, earnedAt)
	return args.Bool(0), args.Error(1)
}

type LeaderboardRepository struct{ mock.Mock }

func NewLeaderboardRepository(t testingT) *LeaderboardRepository {
	m := &LeaderboardRepository{}
	register(&m.Mock, t)
	return m
}

func (m *LeaderboardRepository) FindActiveSeason(ctx context.Context) (*entity.LeaderboardSeason, error) {
	args := m.Called(ctx)
	var s *entity.LeaderboardSeason
	if v := args.Get(0); v != nil {
		s = v.(*entity.LeaderboardSeason)
	}
	return s, args.Error(1)
}

func (m *LeaderboardRepository) FindLowestRank(ctx context.Context, seasonID uint) (int, bool, error) {
	args := m.Called(ctx, seasonID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *LeaderboardRepository) CreateEntryIfMissing(ctx context.Context, entry *entity.SeasonLeaderboardEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *LeaderboardRepository) AddXP(ctx context.Context, seasonID uint, userID uuid.UUID, amount int) (bool, error) {
	args := m.Called(ctx, seasonID, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *LeaderboardRepository) FindTopEntries(ctx context.Context, seasonID uint, limit int) ([]entity.SeasonLeaderboardEntry, error) {
	args := m.Called(ctx, seasonID, limit)
	var e []entity.SeasonLeaderboardEntry
	if v := args.Get(0); v != nil {
		e = v.([]entity.SeasonLeaderboardEntry)
	}
	return e, args.Error(1)
}

type XPRepository struct{ mock.Mock }

func NewXPRepository(t testingT) *XPRepository {
	m := &XPRepository{}
	register(&m.Mock, t)
	return m
}

// RecordAward matches on the row only; the progress func is not comparable.
func (m *XPRepository) RecordAward(ctx context.Context, tx *entity.XPTransaction, progress xpRepo.ProgressFunc) (int, error) {
	args := m.Called(ctx, tx)
	return args.Int(0), args.Error(1)
}

func (m *XPRepository) CountBySourceSince(ctx context.Context, userID uuid.UUID, source string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, source, since)
	return args.Get(0).(int64), args.Error(1)
}

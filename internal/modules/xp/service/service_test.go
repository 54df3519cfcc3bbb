package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"anoa.com/learnquest/internal/entity"
	"anoa.com/learnquest/internal/mocks"
	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	"anoa.com/learnquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

type xpFixture struct {
	repo     *mocks.XPRepository
	season   *mocks.LeaderboardService
	badges   *mocks.BadgeService
	notifier *mocks.NotificationService
	service  XPService
}

func newXPFixture(t *testing.T) *xpFixture {
	f := &xpFixture{
		repo:     mocks.NewXPRepository(t),
		season:   mocks.NewLeaderboardService(t),
		badges:   mocks.NewBadgeService(t),
		notifier: mocks.NewNotificationService(t),
	}
	f.service = NewXPService(f.repo, f.season, f.badges, f.notifier, clockwork.NewFakeClockAt(fixedNow))
	return f
}

func TestStartOfDayUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	got := StartOfDayUTC(time.Date(2026, 10, 18, 5, 0, 0, 0, jakarta))
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestTierBadgeKey(t *testing.T) {
	assert.Equal(t, "gold_tier", TierBadgeKey("Gold"))
	assert.Equal(t, "bronze_tier", TierBadgeKey("Bronze"))
}

func TestProgressFor(t *testing.T) {
	level, tier := progressFor(530)
	assert.Equal(t, 3, level)
	assert.Equal(t, "Silver", tier)

	level, tier = progressFor(0)
	assert.Equal(t, 1, level)
	assert.Equal(t, "Bronze", tier)
}

func TestXPService_AwardUnknownSource(t *testing.T) {
	f := newXPFixture(t)

	_, err := f.service.Award(context.Background(), uuid.New(), "quiz", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestXPService_AwardDailyCap(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()
	midnight := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	f.repo.On("CountBySourceSince", mock.Anything, userID, SourceModule, midnight).
		Return(int64(MaxDailyModuleAwards), nil).Once()

	_, err := f.service.Award(context.Background(), userID, SourceModule, "intro-go")
	assert.ErrorIs(t, err, ErrDailyCapReached)
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
}

func TestXPService_AwardModule(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()

	f.repo.On("CountBySourceSince", mock.Anything, userID, SourceModule, mock.Anything).Return(int64(3), nil).Once()
	f.repo.On("RecordAward", mock.Anything, mock.MatchedBy(func(tx *entity.XPTransaction) bool {
		return tx.UserID == userID && tx.Amount == XPModuleCompleted &&
			tx.Source == SourceModule && tx.ReferenceID == "intro-go" && tx.CreatedAt.Equal(fixedNow)
	})).Return(300, nil).Once()
	f.season.On("AddXP", mock.Anything, userID, XPModuleCompleted).Return(nil).Once()

	res, err := f.service.Award(context.Background(), userID, SourceModule, "intro-go")
	require.NoError(t, err)
	assert.Equal(t, XPModuleCompleted, res.Awarded)
	assert.Equal(t, 300, res.XPTotal)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, "Bronze", res.Tier)
	assert.False(t, res.TierChanged)
}

func TestXPService_AwardTierUp(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()

	f.repo.On("RecordAward", mock.Anything, mock.Anything).Return(505, nil).Once()
	f.notifier.On("Notify", mock.Anything, userID, notificationDto.Event{
		Type:      notificationDto.TypeTierUp,
		UserID:    userID,
		Message:   "You reached Silver tier!",
		Tier:      "Silver",
		XPTotal:   505,
		CreatedAt: fixedNow,
	}).Once()
	f.badges.On("AwardByKey", mock.Anything, userID, "silver_tier").Return(false, errors.New("boom")).Once()
	f.season.On("AddXP", mock.Anything, userID, XPStreakClaimed).Return(errors.New("no season table")).Once()

	res, err := f.service.Award(context.Background(), userID, SourceStreak, "2026-10-17")
	require.NoError(t, err, "badge and season failures are not fatal")
	assert.True(t, res.TierChanged)
	assert.Equal(t, "Silver", res.Tier)
	assert.Equal(t, 3, res.Level)
}

func TestXPService_AwardWithoutProfile(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()

	f.repo.On("RecordAward", mock.Anything, mock.Anything).Return(0, gorm.ErrRecordNotFound).Once()

	_, err := f.service.Award(context.Background(), userID, SourceStreak, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestXPService_AwardRecordFailure(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()

	f.repo.On("RecordAward", mock.Anything, mock.Anything).Return(0, errors.New("insert failed")).Once()

	_, err := f.service.Award(context.Background(), userID, SourceStreak, "")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.ErrorContains(t, err, "insert failed")
}

func TestXPService_AwardRolledBackHasNoSideEffects(t *testing.T) {
	f := newXPFixture(t)
	userID := uuid.New()

	// 495 + 10 would cross into Silver had the award committed.
	f.repo.On("RecordAward", mock.Anything, mock.Anything).
		Return(0, errors.New("canceling statement due to statement timeout")).Once()

	res, err := f.service.Award(context.Background(), userID, SourceStreak, "2026-10-17")
	require.Error(t, err)
	assert.Nil(t, res)
	f.badges.AssertNotCalled(t, "AwardByKey", mock.Anything, mock.Anything, mock.Anything)
	f.season.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

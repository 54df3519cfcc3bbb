package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/learnquest/internal/entity"
	"anoa.com/learnquest/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfile(t *testing.T, db *gorm.DB, xp int) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, db.Create(&entity.Profile{
		UserID:      userID,
		DisplayName: "Ada",
		XPTotal:     xp,
		Level:       1,
		CurrentTier: "Bronze",
		Role:        entity.RoleStudent,
	}).Error)
	return userID
}

func ledgerRow(userID uuid.UUID) *entity.XPTransaction {
	return &entity.XPTransaction{
		UserID:      userID,
		Amount:      50,
		Source:      "module",
		ReferenceID: "intro-go",
		CreatedAt:   time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
}

func fixedProgress(level int, tier string) ProgressFunc {
	return func(int) (int, string) { return level, tier }
}

func countLedger(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.XPTransaction{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func loadProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) entity.Profile {
	t.Helper()
	var p entity.Profile
	require.NoError(t, db.Where("user_id = ?", userID).Take(&p).Error)
	return p
}

func TestXPRepository_RecordAward(t *testing.T) {
	db := testdb.New(t)
	repo := NewXPRepository(db)
	userID := seedProfile(t, db, 480)

	var seen int
	total, err := repo.RecordAward(context.Background(), ledgerRow(userID), func(xp int) (int, string) {
		seen = xp
		return 3, "Silver"
	})
	require.NoError(t, err)

	assert.Equal(t, 530, total)
	assert.Equal(t, 530, seen)
	assert.Equal(t, int64(1), countLedger(t, db, userID))

	p := loadProfile(t, db, userID)
	assert.Equal(t, 530, p.XPTotal)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, "Silver", p.CurrentTier)
}

func TestXPRepository_RecordAwardRollsBackWhenProgressFails(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("fail_progress_update", func(tx *gorm.DB) {
		if values, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			if _, ok := values["level"]; ok {
				tx.AddError(errors.New("statement timeout"))
			}
		}
	}))
	repo := NewXPRepository(db)
	userID := seedProfile(t, db, 100)

	for attempt := 0; attempt < 2; attempt++ {
		_, err := repo.RecordAward(context.Background(), ledgerRow(userID), fixedProgress(1, "Bronze"))
		require.ErrorContains(t, err, "statement timeout")
	}

	assert.Equal(t, int64(0), countLedger(t, db, userID), "failed awards leave no ledger rows")
	assert.Equal(t, 100, loadProfile(t, db, userID).XPTotal, "failed awards credit no xp")
}

func TestXPRepository_RecordAwardWithoutProfile(t *testing.T) {
	db := testdb.New(t)
	repo := NewXPRepository(db)
	userID := uuid.New()

	_, err := repo.RecordAward(context.Background(), ledgerRow(userID), fixedProgress(1, "Bronze"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, int64(0), countLedger(t, db, userID))
}

func TestXPRepository_CountBySourceSince(t *testing.T) {
	db := testdb.New(t)
	repo := NewXPRepository(db)
	userID := uuid.New()
	midnight := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	rows := []entity.XPTransaction{
		{UserID: userID, Amount: 50, Source: "module", CreatedAt: midnight.Add(-time.Minute)},
		{UserID: userID, Amount: 50, Source: "module", CreatedAt: midnight},
		{UserID: userID, Amount: 50, Source: "module", CreatedAt: midnight.Add(5 * time.Hour)},
		{UserID: userID, Amount: 10, Source: "streak", CreatedAt: midnight.Add(time.Hour)},
		{UserID: uuid.New(), Amount: 50, Source: "module", CreatedAt: midnight.Add(time.Hour)},
	}
	require.NoError(t, db.Create(&rows).Error)

	n, err := repo.CountBySourceSince(context.Background(), userID, "module", midnight)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"anoa.com/learnquest/internal/entity"
	leaderboardDto "anoa.com/learnquest/internal/modules/leaderboard/dto"
	leaderboardRepo "anoa.com/learnquest/internal/modules/leaderboard/repository"
	xpService "anoa.com/learnquest/internal/modules/xp/service"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type LeaderboardService interface {
	// Enroll adds the user to the active season behind the current last rank.
	// It is a no-op when no season is active.
	Enroll(ctx context.Context, userID uuid.UUID) error
	// AddXP credits season XP to an enrolled user.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) error
	GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error)
}

type leaderboardService struct {
	repo        leaderboardRepo.LeaderboardRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, redisClient *redis.Client, cacheTTL time.Duration) LeaderboardService {
	return &leaderboardService{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *leaderboardService) Enroll(ctx context.Context, userID uuid.UUID) error {
	season, err := s.repo.FindActiveSeason(ctx)
	if err != nil {
		return fmt.Errorf("find active season: %w", err)
	}
	if season == nil {
		return nil
	}

	lastRank, ok, err := s.repo.FindLowestRank(ctx, season.ID)
	if err != nil {
		return fmt.Errorf("find lowest rank: %w", err)
	}
	newRank := 1
	if ok {
		newRank = lastRank + 1
	}

	if err := s.repo.CreateEntryIfMissing(ctx, &entity.SeasonLeaderboardEntry{
		SeasonID: season.ID,
		UserID:   userID,
		Rank:     newRank,
		XPTotal:  0,
	}); err != nil {
		return fmt.Errorf("create leaderboard entry: %w", err)
	}

	s.invalidate(ctx, season.ID)
	return nil
}

func (s *leaderboardService) AddXP(ctx context.Context, userID uuid.UUID, amount int) error {
	season, err := s.repo.FindActiveSeason(ctx)
	if err != nil {
		return fmt.Errorf("find active season: %w", err)
	}
	if season == nil {
		return nil
	}

	updated, err := s.repo.AddXP(ctx, season.ID, userID, amount)
	if err != nil {
		return fmt.Errorf("add season xp: %w", err)
	}
	if !updated {
		// Users created before the season started join on their first award.
		if err := s.Enroll(ctx, userID); err != nil {
			return err
		}
		if _, err := s.repo.AddXP(ctx, season.ID, userID, amount); err != nil {
			return fmt.Errorf("add season xp: %w", err)
		}
	}

	s.invalidate(ctx, season.ID)
	return nil
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	season, err := s.repo.FindActiveSeason(ctx)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return &leaderboardDto.LeaderboardResponse{Entries: []leaderboardDto.LeaderboardEntry{}}, nil
	}

	if cached, ok := s.readCache(ctx, season.ID, limit); ok {
		return cached, nil
	}

	entries, err := s.repo.FindTopEntries(ctx, season.ID, limit)
	if err != nil {
		return nil, err
	}

	seasonID := season.ID
	resp := &leaderboardDto.LeaderboardResponse{
		SeasonID:   &seasonID,
		SeasonName: season.Name,
		Entries:    make([]leaderboardDto.LeaderboardEntry, 0, len(entries)),
	}
	for i, e := range entries {
		tier := e.Profile.CurrentTier
		if tier == "" {
			tier = xpService.TierForXP(e.Profile.XPTotal).Name
		}
		resp.Entries = append(resp.Entries, leaderboardDto.LeaderboardEntry{
			UserID:      e.UserID,
			DisplayName: e.Profile.DisplayName,
			Tier:        tier,
			Position:    i + 1,
			JoinRank:    e.Rank,
			SeasonXP:    e.XPTotal,
		})
	}

	s.writeCache(ctx, season.ID, limit, resp)
	return resp, nil
}

func cacheKey(seasonID uint, limit int) string {
	return fmt.Sprintf("leaderboard:season:%d:top:%d", seasonID, limit)
}

func cacheIndexKey(seasonID uint) string {
	return fmt.Sprintf("leaderboard:season:%d:keys", seasonID)
}

func (s *leaderboardService) readCache(ctx context.Context, seasonID uint, limit int) (*leaderboardDto.LeaderboardResponse, bool) {
	if s.redisClient == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	raw, err := s.redisClient.Get(ctx, cacheKey(seasonID, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()
		} else {
			metrics.LeaderboardCacheTotal.WithLabelValues("error").Inc()
			logger.Log.Warnw("leaderboard cache read failed", "error", err)
		}
		return nil, false
	}

	var resp leaderboardDto.LeaderboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		metrics.LeaderboardCacheTotal.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
	return &resp, true
}

func (s *leaderboardService) writeCache(ctx context.Context, seasonID uint, limit int, resp *leaderboardDto.LeaderboardResponse) {
	if s.redisClient == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	key := cacheKey(seasonID, limit)
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, key, raw, s.cacheTTL)
	pipe.SAdd(ctx, cacheIndexKey(seasonID), key)
	pipe.Expire(ctx, cacheIndexKey(seasonID), s.cacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warnw("leaderboard cache write failed", "error", err)
	}
}

func (s *leaderboardService) invalidate(ctx context.Context, seasonID uint) {
	if s.redisClient == nil {
		return
	}

	keys, err := s.redisClient.SMembers(ctx, cacheIndexKey(seasonID)).Result()
	if err != nil {
		logger.Log.Warnw("leaderboard cache invalidation failed", "error", err)
		return
	}
	keys = append(keys, cacheIndexKey(seasonID))
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warnw("leaderboard cache invalidation failed", "error", err)
	}
}

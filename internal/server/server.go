package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/learnquest/internal/config"
	"anoa.com/learnquest/internal/middleware"
	"anoa.com/learnquest/internal/scheduler"
	"anoa.com/learnquest/pkg/database"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/ratelimiter"
	"anoa.com/learnquest/pkg/supabase"

	badgeRepo "anoa.com/learnquest/internal/modules/badge/repository"
	badgeService "anoa.com/learnquest/internal/modules/badge/service"

	leaderboardHttp "anoa.com/learnquest/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "anoa.com/learnquest/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/learnquest/internal/modules/leaderboard/service"

	notificationHttp "anoa.com/learnquest/internal/modules/notification/delivery/http"
	notificationService "anoa.com/learnquest/internal/modules/notification/service"

	profileRepo "anoa.com/learnquest/internal/modules/profile/repository"

	statsHttp "anoa.com/learnquest/internal/modules/stats/delivery/http"
	statsService "anoa.com/learnquest/internal/modules/stats/service"

	streakHttp "anoa.com/learnquest/internal/modules/streak/delivery/http"
	streakRepo "anoa.com/learnquest/internal/modules/streak/repository"
	streakService "anoa.com/learnquest/internal/modules/streak/service"

	xpHttp "anoa.com/learnquest/internal/modules/xp/delivery/http"
	xpRepo "anoa.com/learnquest/internal/modules/xp/repository"
	xpService "anoa.com/learnquest/internal/modules/xp/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const jobTimeout = 10 * time.Minute

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	scheduler   *scheduler.Scheduler
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	clock := clockwork.NewRealClock()

	profileRepo := profileRepo.NewProfileRepository(db)
	streakRepo := streakRepo.NewStreakRepository(db)
	badgeRepo := badgeRepo.NewBadgeRepository(db)
	leaderboardRepo := leaderboardRepo.NewLeaderboardRepository(db)
	xpRepo := xpRepo.NewXPRepository(db)

	notificationSvc := notificationService.NewNotificationService(redisClient)
	notificationHandler := notificationHttp.NewNotificationHandler(notificationSvc, cfg.Origins())

	badgeSvc := badgeService.NewBadgeService(badgeRepo, notificationSvc, clock)

	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepo, redisClient, cfg.LeaderboardCacheTTL)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	xpSvc := xpService.NewXPService(xpRepo, leaderboardSvc, badgeSvc, notificationSvc, clock)
	xpHandler := xpHttp.NewXPHandler(xpSvc, ratelimiter.New(redisClient), cfg.RateLimitModule)

	streakSvc := streakService.NewStreakService(streakRepo, xpSvc, badgeSvc, clock)
	streakHandler := streakHttp.NewStreakHandler(streakSvc)

	statsSvc := statsService.NewStatsService(profileRepo, streakRepo, xpSvc, badgeSvc, leaderboardSvc, clock)
	statsHandler := statsHttp.NewStatsHandler(statsSvc)

	jobs := scheduler.NewScheduler(jobTimeout)
	if err := jobs.Register(scheduler.NewStreakResetJob(streakSvc, cfg.StreakResetSchedule)); err != nil {
		return nil, err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.Origins())

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	router.Use(middleware.Metrics())

	s := &Server{
		engine: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler:   jobs,
		db:          db,
		redisClient: redisClient,
	}

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(
		supabase.NewJWTVerifier(cfg.SupabaseJWTSecret, cfg.SupabaseJWTAudience),
	)

	api := router.Group("/api")

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/user/stats", statsHandler.GetUserStats)
		protected.POST("/user/streak/claim", streakHandler.ClaimStreak)
		protected.POST("/modules/:module_id/complete", xpHandler.CompleteModule)
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/ws", notificationHandler.HandleWebSocket)
	}

	return s, nil
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		logger.Log.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run starts the scheduler and serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.scheduler.Start()

	logger.Log.Infow("🚀 server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()
	return s.httpServer.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

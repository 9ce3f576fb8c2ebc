package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "myzai/docs"
	"myzai/internal/ai"
	"myzai/internal/config"
	"myzai/internal/handler"
	studioHandler "myzai/internal/handler/studio"
	"myzai/internal/pkg/inflight"
	"myzai/internal/pkg/jwt"
	"myzai/internal/pkg/mongodb"
	"myzai/internal/pkg/rediscli"
	"myzai/internal/pkg/storagefactory"
	"myzai/internal/repository"
	"myzai/internal/server/middleware"
	"myzai/internal/service"
)

const (
	defaultJWTSecret     = "default-secret-key-change-in-production"
	defaultSessionExpiry = 7 * 24 * time.Hour
	shutdownTimeout      = 10 * time.Second
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *rediscli.Client
	studio *service.StudioService
}

// New 创建服务器实例
// MongoDB、Redis、存储均为可选，连接失败时降级运行
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	setGinMode(cfg.Server.Mode)

	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("provider", cfg.AI.Provider).
		Str("model", cfg.AI.Model).
		Str("image_provider", cfg.AI.Image.Provider).
		Str("image_model", cfg.AI.Image.Model).
		Msg("initialized AI client")

	// 初始化 MongoDB (可选)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(ctx, &cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without persistence")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(ctx, mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)，用于跨副本共享忙碌标记
	var redisClient *rediscli.Client
	var guard inflight.Guard = inflight.NewMemoryGuard()
	if cfg.Redis.Addr != "" {
		rc, err := rediscli.New(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, using in-process busy flags")
		} else {
			redisClient = rc
			guard = inflight.NewRedisGuard(rc.Raw(), cfg.Redis.BusyTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	deps := service.StudioDeps{AI: aiClient, Guard: guard}
	if mongoClient != nil {
		db := mongoClient.Database()
		deps.Conversations = repository.NewConversationRepo(db)

		store, err := storagefactory.NewStorage(ctx, &cfg.Storage)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("failed to initialize storage, artworks will not be saved")
		case store == nil:
			log.Info().Msg("storage not configured, artworks will not be saved")
		default:
			deps.Artworks = repository.NewArtworkRepo(db)
			deps.Storage = store
			log.Info().Str("type", store.GetStorageType()).Msg("initialized artwork storage")
		}
	}

	srv := newServer(cfg, service.NewStudioService(deps))
	srv.mongo = mongoClient
	srv.redis = redisClient
	srv.setupRoutes()
	return srv, nil
}

func newServer(cfg *config.Config, studio *service.StudioService) *Server {
	return &Server{
		cfg:    cfg,
		engine: gin.New(),
		studio: studio,
	}
}

func setGinMode(mode string) {
	switch mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	if s.cfg.Tracing.Enabled {
		s.engine.Use(middleware.Trace(s.cfg.Metrics.ServiceName))
		s.engine.Use(middleware.TraceContext())
	}
	s.engine.Use(middleware.Logger("/health", "/ready", s.cfg.Metrics.Path))
	s.engine.Use(middleware.CORS(s.cfg.Server.AllowedOrigins))
	if s.cfg.Metrics.Enabled {
		s.engine.Use(middleware.Metrics())
		path := s.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	checks := map[string]handler.Pinger{}
	if s.mongo != nil {
		checks["mongo"] = s.mongo
	}
	if s.redis != nil {
		checks["redis"] = s.redis
	}
	healthHandler := handler.NewHealthHandler(checks)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	sessionExpiry := s.cfg.Auth.SessionExpiry
	if sessionExpiry == 0 {
		sessionExpiry = defaultSessionExpiry
	}
	jwtUtil := jwt.NewJWT(jwtSecret, sessionExpiry)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		sessionHdl := handler.NewSessionHandler(jwtUtil)
		v1.POST("/sessions", sessionHdl.Create)

		studio := studioHandler.NewHandler(s.studio)
		api := v1.Group("")
		api.Use(middleware.Session(jwtUtil))
		{
			api.GET("/lyrics/options", studio.LyricsOptions)
			api.POST("/lyrics", studio.GenerateLyrics)
			api.POST("/art", studio.GenerateArt)
			api.POST("/chat", studio.Chat)

			api.GET("/artworks", studio.ListArtworks)
			api.GET("/artworks/:id", studio.GetArtwork)
			api.GET("/artworks/:id/download", studio.DownloadArtwork)
			api.DELETE("/artworks/:id", studio.DeleteArtwork)

			api.POST("/conversations", studio.CreateConversation)
			api.GET("/conversations", studio.ListConversations)
			api.GET("/conversations/:id", studio.GetConversation)
			api.DELETE("/conversations/:id", studio.DeleteConversation)
		}
	}

	if !s.studio.ConversationsEnabled() {
		log.Warn().Msg("MongoDB not configured, conversation endpoints return 503")
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pusher/pusher-http-go/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yukikurage/retro-board-api/internal/config"
	"github.com/yukikurage/retro-board-api/internal/database"
	"github.com/yukikurage/retro-board-api/internal/handlers"
	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/realtime"
	"github.com/yukikurage/retro-board-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	provider := database.NewProvider(cfg.DSN(), logger, cfg.LogLevel == "debug")
	db, err := provider.DB()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	m := metrics.New(logger)
	collector := metrics.NewCollector(db, m, logger, 30*time.Second)
	collector.Start()

	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()

	var transports []realtime.Transport
	var pusherClient *pusher.Client
	pusherClient, err = realtime.NewPusherClient(cfg.Pusher)
	switch {
	case err == nil:
		transports = append(transports, realtime.NewPusherTransport(pusherClient))
	case !errors.Is(err, realtime.ErrTransportNotConfigured):
		logger.Fatal("Failed to configure Pusher", zap.Error(err))
	}

	var hub *realtime.Hub
	if cfg.RealtimeStream {
		hub = realtime.NewHub(logger, m)
		if redisClient != nil {
			transports = append(transports, realtime.NewRedisTransport(redisClient))
			relay := realtime.NewRedisRelay(redisClient, hub, logger)
			go func() {
				if err := relay.Run(relayCtx); err != nil {
					logger.Error("Redis relay stopped", zap.Error(err))
				}
			}()
		} else {
			transports = append(transports, realtime.NewHubTransport(hub))
		}
	}

	broadcaster := realtime.NewBroadcaster(logger, m, cfg.IsProduction(), transports...)
	svc := services.New(db, broadcaster, aiService, m)

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:       logger,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		SessionStore: store,
		Services:     svc,
		Auth:         realtime.NewAuthenticator(pusherClient),
		Hub:          hub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.Bool("pusher", pusherClient != nil),
			zap.Bool("stream", hub != nil),
			zap.Bool("redis", redisClient != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := broadcaster.Close(ctx); err != nil {
		logger.Warn("Board events still in flight at shutdown", zap.Error(err))
	}
	if hub != nil {
		hub.Close()
	}
	stopRelay()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	collector.Stop()
	if err := provider.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		s, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username
			"", // password
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapConfig.Build()
}

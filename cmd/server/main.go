package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	_ "github.com/glancery/glancery/docs"
	"github.com/glancery/glancery/internal/config"
	"github.com/glancery/glancery/internal/events"
	httpapi "github.com/glancery/glancery/internal/http"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/metrics"
	"github.com/glancery/glancery/internal/queue"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/state"
	"github.com/glancery/glancery/internal/storage"
)

// @title Glancery API
// @version 1.0.0
// @description Micro-publishing API: OTP sign-in, glances with gated FAQ answers, drafts, subscribers and engagement stats.
// @schemes http https
// @BasePath /
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := log.Init(cfg.Env == "prod")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Env == "prod" {
		tracer.Start(tracer.WithService("glancery-api"))
		defer tracer.Stop()
	}

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo indexes", zap.Error(err))
	}

	sessions := repo.NewRedis(cfg.RedisAddr)
	defer sessions.Close()
	if err := sessions.Ping(ctx); err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}

	pub, err := queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		logger.Warn("rabbit unavailable, events disabled", zap.Error(err))
		pub = queue.NewNoop()
	}
	defer pub.Close()

	images, err := storage.NewImages(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	h := httpapi.NewHandler(store, sessions, state.New(),
		events.NewAsync(store, logger), pub, images)
	h.Exchange = cfg.RabbitExchange
	h.MagicSecret = cfg.MagicSecret
	h.PublicBaseURL = cfg.PublicBaseURL
	h.OTPTTL = time.Duration(cfg.OTPTTLMinutes) * time.Minute
	h.ResendWindow = time.Duration(cfg.ResendWindowSec) * time.Second
	h.SessionTTL = time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	h.Dev = cfg.Env != "prod"

	r := httpapi.NewRouter(h, cfg.RateLimitPerMin)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("glancery api listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}

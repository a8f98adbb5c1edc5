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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"inkwell-api/internal/config"
	"inkwell-api/internal/db"
	"inkwell-api/internal/email"
	apihttp "inkwell-api/internal/http"
	"inkwell-api/internal/llm"
	"inkwell-api/internal/repository"
	"inkwell-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		userRepo repository.UserRepository
		docRepo  repository.DocRepository
		health   apihttp.HealthCheck
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
		docRepo = repository.NewMemoryDocRepository()
	default:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		userRepo = repository.NewPgUserRepository(pool)
		docRepo = repository.NewPgDocRepository(pool)
		health = func(ctx context.Context) error { return db.Ping(ctx, pool) }
	}

	tokens, err := service.NewTokenCodec(service.TokenConfig{Secret: cfg.Secret, TTL: cfg.TokenTTL()})
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}

	emailSender := newEmailSender(cfg, logger)
	otpLimiter := newOTPLimiter(ctx, cfg, logger)

	codes := service.NewCodeGenerator(service.DefaultArgon2Params())
	issuer := service.NewOTPIssuer(logger, userRepo, codes, emailSender, otpLimiter)
	verifier := service.NewOTPVerifier(logger, userRepo, codes, tokens)
	authorizer := service.NewAuthorizer(tokens, userRepo)

	llmClient := llm.NewHTTPClient(cfg.GenerativeBaseURL, cfg.GenerativeAPIKey, cfg.GenerativeModel, logger)
	if cfg.GenerativeAPIKey == "" {
		logger.Warn("generative ai api key not configured; /prompt will fail")
	}
	assistant := service.NewWritingAssistant(llmClient)

	router := apihttp.NewRouter(
		logger,
		authorizer,
		apihttp.NewAuthHandler(logger, issuer, verifier),
		apihttp.NewDocHandler(logger, docRepo),
		apihttp.NewPromptHandler(logger, assistant),
		apihttp.NewHealthHandler(logger, health),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newEmailSender usa SMTP si esta configurado. En modo memoria, sin SMTP, el
// codigo se loguea para poder probar el flujo localmente.
func newEmailSender(cfg *config.Config, logger *zap.Logger) email.Sender {
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err == nil {
			return sender
		}
		logger.Warn("smtp sender init failed", zap.Error(err))
	}
	if cfg.StoreDriver == config.StoreDriverMemory {
		return email.NewLogSender(logger)
	}
	return email.NewDisabledSender("email sender not configured")
}

func newOTPLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) service.OTPRateLimiter {
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := redisClient.Ping(ctxPing).Err()
		if err == nil {
			return service.NewRedisOTPRateLimiter(redisClient, cfg.OTPRateWindow(), cfg.OTPRateMax)
		}
		logger.Warn("redis ping failed, using in-memory otp limiter", zap.Error(err))
		_ = redisClient.Close()
	}
	return service.NewOTPRateLimiter(cfg.OTPRateWindow(), cfg.OTPRateMax)
}

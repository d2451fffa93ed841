package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"vidsage/internal/app"
	"vidsage/internal/config"
	"vidsage/internal/server"
	"vidsage/internal/util"
	"vidsage/internal/youtube"
	"vidsage/pkg/ai"
	"vidsage/pkg/storage"
	"vidsage/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	generationTimeout, err := config.ParseGenerationTimeout(cfg.GenerationTimeout)
	if err != nil {
		log.Fatalf("failed to parse generation timeout: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var trusted *util.TrustedProxies
	if len(cfg.TrustedProxyCIDRs) > 0 {
		trusted, err = util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
		if err != nil {
			log.Fatalf("failed to parse trusted proxies: %v", err)
		}
	}

	ctx := context.Background()
	fetcher, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, nil)
	if err != nil {
		log.Fatalf("failed to init youtube client: %v", err)
	}

	var archive storage.TranscriptArchive
	if cfg.MinioEndpoint != "" {
		archive, err = storage.NewMinioArchive(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init transcript archive: %v", err)
		}
	}

	sessions := store.NewJWTSessionStore(
		cfg.JWTSecret,
		sessionTTL,
		store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	appCore, err := app.New(app.Config{
		DatabaseURL:       cfg.DatabaseURL,
		Sessions:          sessions,
		Fetcher:           fetcher,
		Generator:         ai.NewOpenAICompatGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
		GenerationTimeout: generationTimeout,
		WebSearchEnabled:  cfg.WebSearchEnabled,
		Archive:           archive,
		Redis:             redisClient,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		RedisAddr:      cfg.RedisAddr,
		RedisPassword:  cfg.RedisPassword,
		AnalyzeLimit:   cfg.AnalyzeRateLimitPerMinute,
		ChatLimit:      cfg.ChatRateLimitPerMinute,
		TrustedProxies: trusted,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vidsage/internal/answer"
	"vidsage/internal/youtube"
	"vidsage/pkg/ai"
	"vidsage/pkg/storage"
	"vidsage/pkg/store"
)

// VideoFetcher retrieves metadata and transcript for a YouTube video id.
type VideoFetcher interface {
	FetchVideo(ctx context.Context, videoID string) (youtube.VideoInfo, error)
}

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL       string
	Store             store.Store
	Sessions          store.SessionStore
	Fetcher           VideoFetcher
	Generator         ai.TextGenerator
	GenerationTimeout time.Duration
	WebSearchEnabled  bool
	Archive           storage.TranscriptArchive
	Redis             *redis.Client
	ContextWindow     int
}

// App is the core application service wiring storage, video fetching, and
// answer generation together.
type App struct {
	store            store.Store
	sessions         store.SessionStore
	fetcher          VideoFetcher
	gen              *answer.Generator
	textGen          ai.TextGenerator
	webSearchEnabled bool
	archive          storage.TranscriptArchive
	redis            *redis.Client
	contextWindow    int
}

// New constructs the application. Store and Sessions may be injected for
// tests; otherwise a postgres store is opened from DatabaseURL.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("video fetcher required")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("text generator required")
	}
	contextWindow := cfg.ContextWindow
	if contextWindow <= 0 {
		contextWindow = 6
	}

	return &App{
		store:            dataStore,
		sessions:         cfg.Sessions,
		fetcher:          cfg.Fetcher,
		gen:              answer.NewGenerator(cfg.Generator, cfg.GenerationTimeout),
		textGen:          cfg.Generator,
		webSearchEnabled: cfg.WebSearchEnabled,
		archive:          cfg.Archive,
		redis:            cfg.Redis,
		contextWindow:    contextWindow,
	}, nil
}

// Store exposes the backing store for session resolution in the HTTP layer.
func (a *App) Store() store.Store { return a.store }

// Sessions exposes the session store for the HTTP layer.
func (a *App) Sessions() store.SessionStore { return a.sessions }

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default location of the YAML config file.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML. Environment
// variables override file values for everything secret or
// deployment-specific.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	DatabaseURL string `yaml:"databaseURL"`

	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	JWTSecret  string `yaml:"jwtSecret"`
	SessionTTL string `yaml:"sessionTTL"`

	YouTubeAPIKey string `yaml:"youtubeApiKey"`

	LLMBaseURL        string `yaml:"llmBaseURL"`
	LLMAPIKey         string `yaml:"llmApiKey"`
	LLMModel          string `yaml:"llmModel"`
	GenerationTimeout string `yaml:"generationTimeout"`
	WebSearchEnabled  bool   `yaml:"webSearchEnabled"`

	AnalyzeRateLimitPerMinute int `yaml:"analyzeRateLimitPerMinute"`
	ChatRateLimitPerMinute    int `yaml:"chatRateLimitPerMinute"`

	TrustedProxyCIDRs []string `yaml:"trustedProxyCidrs"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		cfg.SessionTTL = strings.TrimSpace(v)
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTubeAPIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("GENERATION_TIMEOUT"); v != "" {
		cfg.GenerationTimeout = strings.TrimSpace(v)
	}
	if v := os.Getenv("WEB_SEARCH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.WebSearchEnabled = b
		}
	}
	if v := os.Getenv("ANALYZE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AnalyzeRateLimitPerMinute = n
		}
	}
	if v := os.Getenv("CHAT_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChatRateLimitPerMinute = n
		}
	}
	if v := os.Getenv("TRUSTED_PROXY_CIDRS"); v != "" {
		cfg.TrustedProxyCIDRs = splitCSV(v)
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MinioUseSSL = b
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return errors.New("config: redisAddr is required for sessions and rate limiting")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("config: jwtSecret is required (set in config.yaml or JWT_SECRET)")
	}
	if strings.TrimSpace(cfg.YouTubeAPIKey) == "" {
		return errors.New("config: youtubeApiKey is required (set in config.yaml or YOUTUBE_API_KEY)")
	}
	if strings.TrimSpace(cfg.LLMBaseURL) == "" {
		return errors.New("config: llmBaseURL is required (set in config.yaml or LLM_BASE_URL)")
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llmModel is required (set in config.yaml or LLM_MODEL)")
	}
	if cfg.AnalyzeRateLimitPerMinute < 0 || cfg.ChatRateLimitPerMinute < 0 {
		return errors.New("config: rate limits must be >= 0")
	}
	return nil
}

// ParseSessionTTL parses the optional session TTL duration string.
func ParseSessionTTL(ttl string) (time.Duration, error) {
	if ttl == "" {
		return 24 * time.Hour, nil
	}
	dur, err := time.ParseDuration(ttl)
	if err != nil {
		return 0, fmt.Errorf("invalid sessionTTL duration: %w", err)
	}
	return dur, nil
}

// ParseGenerationTimeout parses the optional LLM call timeout string.
func ParseGenerationTimeout(timeout string) (time.Duration, error) {
	if timeout == "" {
		return 30 * time.Second, nil
	}
	dur, err := time.ParseDuration(timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid generationTimeout duration: %w", err)
	}
	return dur, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

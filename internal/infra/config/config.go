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

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Summary   SummaryConfig   `yaml:"summary"`
	Chat      ChatConfig      `yaml:"chat"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Translate TranslateConfig `yaml:"translate"`
	Speech    SpeechConfig    `yaml:"speech"`
	Audio     AudioConfig     `yaml:"audio"`
	Channels  ChannelsConfig  `yaml:"channels"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// RetrievalConfig tunes the question matcher.
type RetrievalConfig struct {
	TopCandidates       int     `yaml:"topCandidates"`
	ConfidenceThreshold float64 `yaml:"confidenceThreshold"`
	MinSharedTokens     int     `yaml:"minSharedTokens"`
}

// SummaryConfig defines the heuristics for the answer summarizer.
type SummaryConfig struct {
	MaxWords int `yaml:"maxWords"`
}

// ChatConfig controls answer shaping and streaming behavior.
type ChatConfig struct {
	MaxAnswerWords int           `yaml:"maxAnswerWords"`
	WordDelay      time.Duration `yaml:"wordDelay"`
	AudioEnabled   bool          `yaml:"audioEnabled"`
}

// DatasetConfig selects where the question corpus is loaded from.
type DatasetConfig struct {
	CSVPath  string         `yaml:"csvPath"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// TranslateConfig controls the translation client.
type TranslateConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseUrl"`
}

// SpeechConfig controls text-to-speech synthesis.
type SpeechConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseUrl"`
}

// AudioConfig contains object storage settings for synthesized audio.
type AudioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// ChannelsConfig contains messaging channel settings.
type ChannelsConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for the language store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("RETRIEVAL_TOP_CANDIDATES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.TopCandidates = parsed
		}
	}
	if v := os.Getenv("RETRIEVAL_CONFIDENCE_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Retrieval.ConfidenceThreshold = parsed
		}
	}
	if v := os.Getenv("RETRIEVAL_MIN_SHARED_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Retrieval.MinSharedTokens = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_WORDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxWords = parsed
		}
	}
	if v := os.Getenv("CHAT_MAX_ANSWER_WORDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxAnswerWords = parsed
		}
	}
	if v := os.Getenv("CHAT_WORD_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.WordDelay = parsed
		}
	}
	if v := os.Getenv("CHAT_AUDIO_ENABLED"); v != "" {
		cfg.Chat.AudioEnabled = parseBool(v)
	}
	if v := os.Getenv("DATASET_CSV_PATH"); v != "" {
		cfg.Dataset.CSVPath = v
	}
	if v := os.Getenv("DATASET_POSTGRES_DSN"); v != "" {
		cfg.Dataset.Postgres.DSN = v
	}
	if v := os.Getenv("DATASET_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("DATASET_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dataset.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("TRANSLATE_ENABLED"); v != "" {
		cfg.Translate.Enabled = parseBool(v)
	}
	if v := os.Getenv("TRANSLATE_BASE_URL"); v != "" {
		cfg.Translate.BaseURL = v
	}
	if v := os.Getenv("SPEECH_ENABLED"); v != "" {
		cfg.Speech.Enabled = parseBool(v)
	}
	if v := os.Getenv("SPEECH_BASE_URL"); v != "" {
		cfg.Speech.BaseURL = v
	}
	if v := os.Getenv("AUDIO_ENDPOINT"); v != "" {
		cfg.Audio.Endpoint = v
	}
	if v := os.Getenv("AUDIO_ACCESS_KEY"); v != "" {
		cfg.Audio.AccessKey = v
	}
	if v := os.Getenv("AUDIO_SECRET_KEY"); v != "" {
		cfg.Audio.SecretKey = v
	}
	if v := os.Getenv("AUDIO_BUCKET"); v != "" {
		cfg.Audio.Bucket = v
	}
	if v := os.Getenv("AUDIO_REGION"); v != "" {
		cfg.Audio.Region = v
	}
	if v := os.Getenv("CHANNELS_REDIS_ENABLED"); v != "" {
		cfg.Channels.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CHANNELS_REDIS_ADDR"); v != "" {
		cfg.Channels.Redis.Addr = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/chat/stream",
					"/whatsapp",
				},
			},
		},
		Retrieval: RetrievalConfig{
			TopCandidates:       5,
			ConfidenceThreshold: 0.15,
			MinSharedTokens:     1,
		},
		Summary: SummaryConfig{
			MaxWords: 120,
		},
		Chat: ChatConfig{
			MaxAnswerWords: 120,
			WordDelay:      30 * time.Millisecond,
			AudioEnabled:   false,
		},
		Dataset: DatasetConfig{
			CSVPath: "data/health_qa.csv",
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Translate: TranslateConfig{
			Enabled: true,
		},
		Speech: SpeechConfig{
			Enabled: false,
		},
		Audio: AudioConfig{
			Bucket: "healthqa-audio",
		},
		Channels: ChannelsConfig{
			Redis: RedisConfig{
				Enabled: false,
				Addr:    "",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Retrieval.TopCandidates <= 0 {
		return errors.New("retrieval.topCandidates must be positive")
	}
	if c.Retrieval.ConfidenceThreshold < 0 || c.Retrieval.ConfidenceThreshold > 1 {
		return errors.New("retrieval.confidenceThreshold must be within [0, 1]")
	}
	if c.Retrieval.MinSharedTokens < 0 {
		return errors.New("retrieval.minSharedTokens cannot be negative")
	}
	if c.Summary.MaxWords <= 0 {
		return errors.New("summary.maxWords must be positive")
	}
	if c.Chat.MaxAnswerWords <= 0 {
		return errors.New("chat.maxAnswerWords must be positive")
	}
	if c.Chat.WordDelay < 0 {
		return errors.New("chat.wordDelay cannot be negative")
	}
	if c.Dataset.CSVPath == "" && strings.TrimSpace(c.Dataset.Postgres.DSN) == "" {
		return errors.New("dataset requires either csvPath or postgres.dsn")
	}
	if c.Chat.AudioEnabled && !c.Speech.Enabled {
		return errors.New("chat.audioEnabled requires speech.enabled")
	}
	if c.Channels.Redis.Enabled && strings.TrimSpace(c.Channels.Redis.Addr) == "" {
		return errors.New("channels.redis.addr cannot be empty when redis is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

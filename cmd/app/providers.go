package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/aidassist/healthqa/internal/domain/chat"
	"github.com/aidassist/healthqa/internal/domain/retrieval"
	"github.com/aidassist/healthqa/internal/domain/summarizer"
	"github.com/aidassist/healthqa/internal/infra/audiostore"
	"github.com/aidassist/healthqa/internal/infra/config"
	"github.com/aidassist/healthqa/internal/infra/corpusrepo"
	"github.com/aidassist/healthqa/internal/infra/dataset"
	"github.com/aidassist/healthqa/internal/infra/langstore"
	"github.com/aidassist/healthqa/internal/infra/speech"
	"github.com/aidassist/healthqa/internal/infra/translate"
	"github.com/aidassist/healthqa/pkg/metrics"
)

func provideRetrievalConfig(cfg *config.Config) retrieval.Config {
	return retrieval.Config{
		TopCandidates:       cfg.Retrieval.TopCandidates,
		ConfidenceThreshold: cfg.Retrieval.ConfidenceThreshold,
		MinSharedTokens:     cfg.Retrieval.MinSharedTokens,
	}
}

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{MaxWords: cfg.Summary.MaxWords}
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		MaxAnswerWords: cfg.Chat.MaxAnswerWords,
		WordDelay:      cfg.Chat.WordDelay,
		AudioEnabled:   cfg.Chat.AudioEnabled,
	}
}

func provideCorpus(cfg *config.Config, logger *slog.Logger) []retrieval.Entry {
	dsn := strings.TrimSpace(cfg.Dataset.Postgres.DSN)
	if dsn != "" {
		entries, err := loadCorpusFromPostgres(cfg, dsn)
		if err == nil {
			logger.Info("corpus loaded from postgres", "entries", len(entries))
			return entries
		}
		logger.Error("postgres corpus load failed, falling back to csv", "error", err)
	}

	entries, err := dataset.LoadCSV(cfg.Dataset.CSVPath)
	if err != nil {
		logger.Error("csv corpus load failed, starting with empty corpus", "path", cfg.Dataset.CSVPath, "error", err)
		return nil
	}
	logger.Info("corpus loaded from csv", "path", cfg.Dataset.CSVPath, "entries", len(entries))
	return entries
}

func loadCorpusFromPostgres(cfg *config.Config, dsn string) ([]retrieval.Entry, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if cfg.Dataset.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Dataset.Postgres.MaxConns
	}
	if cfg.Dataset.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Dataset.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return corpusrepo.NewPostgresSource(pool).Load(ctx)
}

func provideIndex(entries []retrieval.Entry) *retrieval.Index {
	return retrieval.NewIndex(entries)
}

func provideTranslator(cfg *config.Config) chat.Translator {
	if !cfg.Translate.Enabled {
		return nil
	}
	return translate.NewClient(cfg.Translate.BaseURL)
}

func provideSpeech(cfg *config.Config) chat.SpeechSynthesizer {
	if !cfg.Speech.Enabled {
		return nil
	}
	return speech.NewClient(cfg.Speech.BaseURL)
}

func provideAudioStore(cfg *config.Config, logger *slog.Logger) chat.AudioStore {
	if strings.TrimSpace(cfg.Audio.Endpoint) == "" {
		logger.Info("audio endpoint not set, using memory store")
		return audiostore.NewMemoryStore()
	}
	store, err := audiostore.NewMinioStore(cfg.Audio.Endpoint, cfg.Audio.AccessKey, cfg.Audio.SecretKey, cfg.Audio.Bucket, cfg.Audio.Region, logger)
	if err != nil {
		logger.Error("object storage init failed, using memory store", "error", err)
		return audiostore.NewMemoryStore()
	}
	logger.Info("audio object storage enabled", "bucket", cfg.Audio.Bucket)
	return store
}

func provideLanguageStore(cfg *config.Config, logger *slog.Logger) chat.LanguageStore {
	if cfg.Channels.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return langstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return langstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("language valkey store enabled", "addr", cfg.Channels.Redis.Addr)
			return langstore.NewValkeyStore(client, "lang")
		}
	}
	return langstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Channels.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Channels.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Channels.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideOutcomeCounters() *metrics.OutcomeCounters {
	return metrics.NewOutcomeCounters()
}

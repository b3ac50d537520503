//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/aidassist/healthqa/internal/bootstrap"
	"github.com/aidassist/healthqa/internal/domain/chat"
	"github.com/aidassist/healthqa/internal/domain/retrieval"
	"github.com/aidassist/healthqa/internal/domain/summarizer"
	"github.com/aidassist/healthqa/internal/infra/config"
	httpiface "github.com/aidassist/healthqa/internal/interface/http"
	"github.com/aidassist/healthqa/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRetrievalConfig,
		provideSummaryConfig,
		provideChatConfig,
		provideCorpus,
		provideIndex,
		provideTranslator,
		provideSpeech,
		provideAudioStore,
		provideLanguageStore,
		provideOutcomeCounters,
		retrieval.NewMatcher,
		summarizer.NewService,
		chat.NewService,
		wire.Bind(new(chat.Matcher), new(*retrieval.Matcher)),
		wire.Bind(new(chat.Summarizer), new(*summarizer.Service)),
		httpiface.NewChatHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

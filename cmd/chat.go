package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/ai/ollama"
	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/batch"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/secrets"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

func newChatter(ctx context.Context, cfg AIConfig, log *zap.Logger) (ai.Chatter, error) {
	switch cfg.Provider {
	case ollama.Provider, "":
		client, err := ollama.New(cfg.Ollama.Host, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	case gemini.Provider:
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  geminiAPIKeyEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
		}
		return gemini.New(ctx, apiKey, cfg.Model, log)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// newProcessor wires the chat transport, the analyzer and the batch driver.
func newProcessor(ctx context.Context, cfg *Config, log *zap.Logger) (*batch.Processor, error) {
	aiLogger := logger.ForProvider(log, cfg.AI.Provider, cfg.AI.Model)

	chat, err := newChatter(ctx, cfg.AI, aiLogger)
	if err != nil {
		return nil, err
	}

	a := analyzer.New(chat,
		analyzer.WithModel(cfg.AI.Model),
		analyzer.WithLogger(aiLogger),
		analyzer.WithMaxLogLength(cfg.AI.MaxLogLength),
		analyzer.WithTimeout(cfg.AI.Timeout),
	)

	return batch.New(a, log), nil
}

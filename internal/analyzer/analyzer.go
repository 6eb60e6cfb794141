// Package analyzer asks a chat model to score a resume against a job title.
package analyzer

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/utils"
)

const (
	// DefaultModel is a small instruction-tuned model served by a local ollama daemon.
	DefaultModel = "llama3.2:1b"

	defaultMaxLogLength = 200
)

// Analyzer sends one prompt per resume and returns the model's answer as is.
type Analyzer struct {
	chat      ai.Chatter
	model     string
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
}

type Option func(*Analyzer)

// WithModel overrides DefaultModel. Empty values are ignored.
func WithModel(model string) Option {
	return func(a *Analyzer) {
		if model != "" {
			a.model = model
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxLogLength limits prompt and response previews in debug logs.
func WithMaxLogLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxLogLen = n
		}
	}
}

// WithTimeout bounds each remote call. Zero keeps calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func New(chat ai.Chatter, opts ...Option) *Analyzer {
	a := &Analyzer{
		chat:      chat,
		model:     DefaultModel,
		logger:    zap.NewNop(),
		maxLogLen: defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Model() string {
	return a.model
}

// Analyze builds the prompt for text and jobTitle, submits it as a single
// user message and returns the reply content verbatim. The reply is not
// checked against the requested Score/Reason format.
func (a *Analyzer) Analyze(ctx context.Context, text, jobTitle string) (string, error) {
	if a.chat == nil {
		return "", errors.New("chat client is not configured")
	}

	prompt := BuildPrompt(text, jobTitle)

	a.logger.Debug("chat request",
		zap.String("job_title", jobTitle),
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	resp, err := a.chat.Chat(ctx, ai.ChatRequest{
		Model:    a.model,
		Messages: []ai.Message{ai.UserMessage(prompt)},
		Stream:   false,
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("chat client returned no response")
	}

	a.logger.Debug("chat response",
		zap.Int("response_length", utf8.RuneCountInString(resp.Message.Content)),
		zap.String("response_preview", utils.TruncateForLog(resp.Message.Content, a.maxLogLen)),
	)

	return resp.Message.Content, nil
}

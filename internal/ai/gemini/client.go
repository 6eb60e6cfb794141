package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-analyzer/internal/ai"
)

const (
	// Provider is the name used in configuration and logs.
	Provider = "gemini"
	// DefaultModel is used when neither the config nor a request names a model.
	DefaultModel = "gemini-2.5-flash"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI client and exposes it as an ai.Chatter.
type Client struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// New creates a Client configured for the Gemini API backend. The model is
// used when a request does not name one.
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{models: client.Models, model: model, logger: logger}, nil
}

// Chat maps the chat messages onto a single GenerateContent call and returns
// the joined text of the first candidate.
func (c *Client) Chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	if c == nil || c.models == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.model
	}

	contents, config := toContents(req.Messages)
	if len(contents) == 0 {
		return nil, errors.New("at least one non-system message is required")
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := firstCandidateText(resp)
	c.logger.Debug("got response from gemini",
		zap.String("model", model),
		zap.Int("content_length", len(text)),
	)

	return &ai.ChatResponse{
		Model:   model,
		Message: ai.Message{Role: ai.RoleAssistant, Content: text},
	}, nil
}

func toContents(messages []ai.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	var config *genai.GenerateContentConfig
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		part := &genai.Part{Text: m.Content}
		switch m.Role {
		case ai.RoleSystem:
			if config == nil {
				config = &genai.GenerateContentConfig{SystemInstruction: &genai.Content{}}
			}
			config.SystemInstruction.Parts = append(config.SystemInstruction.Parts, part)
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{part}})
		}
	}

	return contents, config
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var builder strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			builder.WriteString(part.Text)
		}
		return builder.String()
	}

	return ""
}

var _ ai.Chatter = (*Client)(nil)

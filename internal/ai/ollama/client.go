package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
)

// Provider is the name used in configuration and logs.
const Provider = "ollama"

// Client talks to the Ollama chat endpoint through the official api package.
type Client struct {
	api    *api.Client
	host   *url.URL
	logger *zap.Logger
}

// New creates a client for the given host. An empty host falls back to
// OLLAMA_HOST and then to the local daemon address. Requests have no client
// timeout and wait as long as the context allows.
func New(host string, logger *zap.Logger) (*Client, error) {
	base, err := ResolveHost(host)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		api:    api.NewClient(base, http.DefaultClient),
		host:   base,
		logger: logger,
	}, nil
}

// ResolveHost parses an explicit daemon address. A bare host:port gets the
// http scheme. An empty address is resolved by the ollama environment rules.
func ResolveHost(host string) (*url.URL, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return envconfig.Host(), nil
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	base, err := url.Parse(strings.TrimRight(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("parse ollama host %q: missing host", host)
	}

	return base, nil
}

// Host returns the resolved base URL.
func (c *Client) Host() string {
	return c.host.String()
}

// Chat sends the request to /api/chat and returns the reply.
// Streaming is always disabled.
func (c *Client) Chat(ctx context.Context, chat ai.ChatRequest) (*ai.ChatResponse, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    chat.Model,
		Messages: make([]api.Message, 0, len(chat.Messages)),
		Stream:   &stream,
	}
	for _, m := range chat.Messages {
		req.Messages = append(req.Messages, api.Message{Role: m.Role, Content: m.Content})
	}

	c.logger.Debug("make request", zap.String("url", c.host.String()), zap.String("model", chat.Model))

	var response ai.ChatResponse
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		response.Model = resp.Model
		response.Message.Role = resp.Message.Role
		response.Message.Content += resp.Message.Content
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("bad status: %w", statusErr)
		}
		return nil, fmt.Errorf("ollama chat: %w", err)
	}

	c.logger.Debug("got response from ollama",
		zap.String("model", response.Model),
		zap.Int("content_length", len(response.Message.Content)),
	)

	return &response, nil
}

var _ ai.Chatter = (*Client)(nil)

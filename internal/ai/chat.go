package ai

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest mirrors the wire shape {model, messages, stream}.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// ChatResponse carries the assistant message returned by the provider.
type ChatResponse struct {
	Model   string  `json:"model,omitempty"`
	Message Message `json:"message"`
}

// Chatter sends one non-streaming chat request and blocks until the reply arrives.
type Chatter interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// UserMessage builds a single user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

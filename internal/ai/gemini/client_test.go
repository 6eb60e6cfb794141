package gemini

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-analyzer/internal/ai"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestChatSendsSingleUserMessage(t *testing.T) {
	models := &fakeModels{resp: textResponse("Score: 70/100\n", "Reason: ok")}
	c := &Client{models: models, model: "gemini-pro", logger: zap.NewNop()}

	resp, err := c.Chat(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{ai.UserMessage("analyze this")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message.Content != "Score: 70/100\nReason: ok" {
		t.Fatalf("unexpected content: %q", resp.Message.Content)
	}
	if models.model != "gemini-pro" {
		t.Fatalf("expected default model, got %q", models.model)
	}
	if len(models.contents) != 1 || models.contents[0].Parts[0].Text != "analyze this" {
		t.Fatalf("unexpected contents: %+v", models.contents)
	}
	if models.config != nil {
		t.Fatalf("expected no config without system messages")
	}
}

func TestChatUsesRequestModelAndSystemInstruction(t *testing.T) {
	models := &fakeModels{resp: textResponse("fine")}
	c := &Client{models: models, model: "gemini-pro", logger: zap.NewNop()}

	_, err := c.Chat(context.Background(), ai.ChatRequest{
		Model: "gemini-flash",
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: "be terse"},
			ai.UserMessage("hi"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if models.model != "gemini-flash" {
		t.Fatalf("expected request model, got %q", models.model)
	}
	if models.config == nil || models.config.SystemInstruction == nil {
		t.Fatal("expected system instruction")
	}
	if got := models.config.SystemInstruction.Parts[0].Text; got != "be terse" {
		t.Fatalf("unexpected system instruction: %q", got)
	}
}

func TestChatPassesEmptyAnswerThrough(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{}}
	c := &Client{models: models, model: "gemini-pro", logger: zap.NewNop()}

	resp, err := c.Chat(context.Background(), ai.ChatRequest{Messages: []ai.Message{ai.UserMessage("x")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message.Content != "" {
		t.Fatalf("expected empty content, got %q", resp.Message.Content)
	}
}

func TestChatDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	c := &Client{models: models, model: "gemini-pro", logger: zap.NewNop()}

	_, err := c.Chat(context.Background(), ai.ChatRequest{Messages: []ai.Message{ai.UserMessage("x")}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "generate content") {
		t.Fatalf("unexpected error: %v", err)
	}
	if models.calls != 1 {
		t.Fatalf("expected single call, got %d", models.calls)
	}
}

func TestChatRequiresUserContent(t *testing.T) {
	c := &Client{models: &fakeModels{}, model: "gemini-pro", logger: zap.NewNop()}

	_, err := c.Chat(context.Background(), ai.ChatRequest{Messages: []ai.Message{{Role: ai.RoleSystem, Content: "only system"}}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "  ", "", nil)
	if err == nil {
		t.Fatal("expected error for empty api key")
	}

	var nilClient *Client
	if _, err := nilClient.Chat(context.Background(), ai.ChatRequest{}); err == nil {
		t.Fatal("expected error from nil client")
	}
}

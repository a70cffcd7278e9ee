package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nanobanana/nanoblog/internal/config"
	"github.com/nanobanana/nanoblog/internal/debuglog"
)

const systemPrompt = `You are the reading assistant of a personal blog that covers ` +
	`software engineering, side projects, travel and notes. Answer questions about ` +
	`the blog's topics, help readers find related posts, and keep answers short ` +
	`and friendly. Reply in the language the reader writes in.`

// Message is one turn of the chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant talks to an OpenAI-compatible endpoint. It never fails a
// conversation: transport or API errors come back as an assistant turn
// so the transcript stays renderable.
type Assistant struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// ErrNotConfigured is returned by NewAssistant when no API key is set.
var ErrNotConfigured = fmt.Errorf("ai assistant not configured, set ai.api_key or NANOBLOG_AI_API_KEY")

func NewAssistant(cfg config.AIConfig) (*Assistant, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Assistant{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (a *Assistant) Model() string { return a.model }

// Send appends the user's message to the transcript, asks the model and
// appends its reply. On failure the error text becomes the reply.
func (a *Assistant) Send(ctx context.Context, history []Message, userMsg string) []Message {
	history = append(history, Message{Role: openai.ChatMessageRoleUser, Content: userMsg})

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	}
	if a.maxTokens > 0 {
		req.MaxTokens = a.maxTokens
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		debuglog.Errorf("chat completion failed: %v", err)
		return append(history, Message{
			Role:    openai.ChatMessageRoleAssistant,
			Content: fmt.Sprintf("Sorry, I could not reach the assistant: %v", err),
		})
	}
	if len(resp.Choices) == 0 {
		return append(history, Message{
			Role:    openai.ChatMessageRoleAssistant,
			Content: "Sorry, the assistant returned an empty reply.",
		})
	}

	return append(history, Message{
		Role:    openai.ChatMessageRoleAssistant,
		Content: resp.Choices[0].Message.Content,
	})
}

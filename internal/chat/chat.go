// Package chat proxies conversational requests to OpenAI-compatible chat
// completion providers.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/JaimeStill/voice-lab/internal/config"
)

// Domain errors for chat operations.
var (
	ErrMissingMessage  = errors.New("message required")
	ErrMissingMessages = errors.New("messages required")
	ErrEmptyCompletion = errors.New("provider returned no choices")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingMessage) || errors.Is(err, ErrMissingMessages) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

const systemPrompt = "You are a helpful AI assistant."

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System defines the chat operations. Chat answers a single message with a
// short completion; Converse continues a full conversation history.
type System interface {
	Chat(ctx context.Context, message string) (string, error)
	Converse(ctx context.Context, messages []Message) (string, error)
}

type service struct {
	chatClient  openai.Client
	convoClient openai.Client
	chatModel   string
	convoModel  string
	logger      *slog.Logger
}

// New creates the chat service. Single-message chat goes to OpenAI; full
// conversations route through OpenRouter.
func New(cfg *config.ChatConfig, logger *slog.Logger) System {
	return &service{
		chatClient: openai.NewClient(
			option.WithAPIKey(cfg.OpenAIKey),
		),
		convoClient: openai.NewClient(
			option.WithAPIKey(cfg.OpenRouterKey),
			option.WithBaseURL(cfg.OpenRouterBaseURL),
			option.WithHeader("HTTP-Referer", cfg.Referer),
		),
		chatModel:  cfg.OpenAIModel,
		convoModel: cfg.OpenRouterModel,
		logger:     logger.With("system", "chat"),
	}
}

func (s *service) Chat(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrMissingMessage
	}

	completion, err := s.chatClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.chatModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(message),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(100),
	})
	if err != nil {
		s.logger.Error("chat completion failed", "model", s.chatModel, "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}

func (s *service) Converse(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrMissingMessages
	}

	params := openai.ChatCompletionNewParams{
		Model:    s.convoModel,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, m := range messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	completion, err := s.convoClient.Chat.Completions.New(ctx, params)
	if err != nil {
		s.logger.Error("conversation completion failed", "model", s.convoModel, "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}

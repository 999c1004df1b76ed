package breaker

import (
	"context"
	"log/slog"

	"github.com/yanqian/weatherstyle/internal/infra/llm/chatgpt"
)

// ChatClient guards the ChatGPT client with a circuit breaker.
type ChatClient struct {
	inner   *chatgpt.Client
	breaker *Breaker
}

// NewChatClient wraps inner.
func NewChatClient(inner *chatgpt.Client, settings Settings, logger *slog.Logger) *ChatClient {
	return &ChatClient{inner: inner, breaker: New("llm-chatgpt", settings, logger)}
}

// CreateChatCompletion runs a chat completion through the breaker.
func (c *ChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	resp, err := Do(c.breaker, func() (chatgpt.ChatCompletionResponse, error) {
		return c.inner.CreateChatCompletion(ctx, req)
	})
	RecordCall("chatgpt", "chat_completion", err)
	return resp, err
}

// CreateImage runs an image generation through the breaker.
func (c *ChatClient) CreateImage(ctx context.Context, req chatgpt.ImageRequest) (chatgpt.ImageResponse, error) {
	resp, err := Do(c.breaker, func() (chatgpt.ImageResponse, error) {
		return c.inner.CreateImage(ctx, req)
	})
	RecordCall("chatgpt", "image_generation", err)
	return resp, err
}

// Package assistant provides the generic reply client backed by a
// chat-completion API.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bookchatai/bookchat/internal/config"
)

// systemPrompt fixes the assistant persona for every completion call.
const systemPrompt = "Ты книжный помощник. Помогаешь пользователям находить книги, " +
	"рекомендовать литературу, обсуждать авторов и жанры. Будь дружелюбным и полезным."

// The two degraded replies. Both resolve a failed upstream call into a valid
// answer; which one the user sees depends only on where the call failed.
const (
	fallbackUpstreamError  = "Извините, возникла проблема с обработкой вашего запроса. Попробуйте еще раз."
	fallbackTransportError = "Не удалось обработать запрос. Пожалуйста, попробуйте позже."
)

const (
	completionTemperature = 0.7
	completionMaxTokens   = 500
)

// Client calls the chat-completion API with a fixed book-assistant persona.
// Complete never fails: every failure path resolves to an apology reply.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	logger  *slog.Logger
	http    *http.Client
}

// NewClient creates a completion client from config. An empty API key
// disables the client; Enabled reports this to the caller.
func NewClient(log *slog.Logger, cfg config.OpenAIConfig) *Client {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = config.DefaultOpenAIBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		logger:  log.With(slog.String("client", "assistant")),
		http: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Enabled reports whether a completion credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the user message as the sole conversational turn and returns
// the reply text. No history is threaded in. Failures are logged and resolved
// to one of the fixed apology replies.
func (c *Client) Complete(ctx context.Context, message string) string {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		c.logger.Warn("completion request marshal failed", slog.Any("error", err))
		return fallbackTransportError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("completion request build failed", slog.Any("error", err))
		return fallbackTransportError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("completion call failed", slog.Any("error", err))
		return fallbackTransportError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		c.logger.Warn("completion upstream error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", strings.TrimSpace(string(b))),
		)
		return fallbackUpstreamError
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Warn("completion response decode failed", slog.Any("error", err))
		return fallbackTransportError
	}
	if len(parsed.Choices) == 0 {
		c.logger.Warn("completion response missing choices")
		return fallbackUpstreamError
	}
	return parsed.Choices[0].Message.Content
}

package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farmersguild/backend/internal/domain/providers"
	"github.com/farmersguild/backend/pkg/config"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// requestTimeout covers a single attempt. Calls are never retried, so a
// slow generation has until this deadline to finish.
const requestTimeout = 60 * time.Second

// Client talks to the OpenRouter chat-completions API (OpenAI-compatible).
// It implements providers.ChatModelProvider.
type Client struct {
	apiKey      string
	chatModel   string
	visionModel string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a new OpenRouter client.
func NewClient(cfg *config.OpenRouterConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openrouter api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "deepseek/deepseek-chat-v3.1:free"
	}
	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = "meta-llama/llama-4-maverick:free"
	}

	return &Client{
		apiKey:      cfg.APIKey,
		chatModel:   chatModel,
		visionModel: visionModel,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// VisionModel returns the model used for multimodal requests.
func (c *Client) VisionModel() string {
	return c.visionModel
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// wireMessage carries either a plain string content or a multimodal part
// list, matching the OpenAI-compatible wire format.
type wireMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends a role-tagged message list to the model and returns the
// generated text. One attempt only; any transport or endpoint failure is
// returned to the caller unchanged in kind.
func (c *Client) Chat(ctx context.Context, messages []providers.ChatMessage, opts providers.ChatOptions) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("at least one message is required")
	}

	model := opts.Model
	if model == "" {
		model = c.chatModel
	}

	payload := chatRequest{
		Model:       model,
		Messages:    make([]wireMessage, 0, len(messages)),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for _, msg := range messages {
		payload.Messages = append(payload.Messages, toWireMessage(msg))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequestMetric(ctx, model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("openrouter request failed with status %d", resp.StatusCode)
		recordRequestMetric(ctx, model, resp.StatusCode, time.Since(start), statusErr)
		return "", statusErr
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordRequestMetric(ctx, model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		missingErr := errors.New("openrouter response missing message content")
		recordRequestMetric(ctx, model, resp.StatusCode, time.Since(start), missingErr)
		return "", missingErr
	}

	recordRequestMetric(ctx, model, resp.StatusCode, time.Since(start), nil)
	return envelope.Choices[0].Message.Content, nil
}

func toWireMessage(msg providers.ChatMessage) wireMessage {
	if msg.ImageBase64 == "" {
		return wireMessage{Role: msg.Role, Content: msg.Content}
	}
	return wireMessage{
		Role: msg.Role,
		Content: []contentPart{
			{Type: "text", Text: msg.Content},
			{Type: "image_url", ImageURL: &imageURL{
				URL: "data:image/jpeg;base64," + msg.ImageBase64,
			}},
		},
	}
}

// StripMarkdownFences removes a surrounding markdown code fence from model
// output. Models wrap JSON replies in fences often enough that structured
// parsing has to tolerate it.
func StripMarkdownFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

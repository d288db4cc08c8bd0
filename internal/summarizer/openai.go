// Package summarizer produces short summaries of memo text with a chat
// completion model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// SystemPrompt instructs the model to produce one concise paragraph.
const SystemPrompt = "다음 메모들의 핵심 내용을 한 문단으로 간결하게 요약해주세요."

// Temperature used for every request.
const Temperature = 0.7

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-3.5-turbo"

var (
	// ErrNoChoices is returned when the API answers without any completion.
	ErrNoChoices = errors.New("completion returned no choices")
	// ErrUpstream wraps non-2xx answers from the API.
	ErrUpstream = errors.New("completion API error")
	// ErrTimeout is returned when the request deadline passes.
	ErrTimeout = errors.New("completion request timed out")
)

// Config configures the OpenAI summarizer.
type Config struct {
	APIKey  string
	BaseURL string // optional, for compatible gateways
	Model   string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// HTTPClient overrides the default client. Used by tests.
	HTTPClient *http.Client
}

// OpenAI summarizes text with the chat completions endpoint.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a summarizer. Requests are never retried.
func NewOpenAI(cfg Config) *OpenAI {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Summarize sends text with the fixed system prompt and returns the first
// choice, trimmed.
func (s *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classify turns client errors into short reasons that are safe to show
// to API callers.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d", ErrUpstream, apiErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("completion request failed: %w", err)
}

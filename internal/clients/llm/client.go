package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"time"
)

const (
	GroqURL       = "https://api.groq.com/openai/v1/chat/completions"
	PerplexityURL = "https://api.perplexity.ai/chat/completions"

	defaultTemperature = 0.3
	maxAttempts        = 3
)

var ErrMissingAPIKey = errors.New("llm api key is not configured")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-200 answer from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to OpenAI-compatible chat completion endpoints (Groq, Perplexity).
type Client struct {
	name        string
	url         string
	apiKey      string
	model       string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	breaker     *breaker
	retryDelay  time.Duration
}

func NewClient(name, url, apiKey, model string) *Client {
	return &Client{
		name:       name,
		url:        url,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		retryDelay: 2 * time.Second,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient = &http.Client{Timeout: timeout}
}

func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	if maxRequestsPerMinute <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

func (c *Client) SetCircuitBreaker(settings BreakerSettings) {
	c.breaker = newBreaker("llm-"+c.name, settings)
}

func (c *Client) BreakerState() string {
	return c.breaker.state()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt and returns the raw text of the first choice.
// Provider 5xx answers are retried; everything else fails immediately.
func (c *Client) Complete(ctx context.Context, prompt Prompt) (string, error) {

	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	start := time.Now()
	defer func() {
		metrics.LLMCallDuration.WithLabelValues(prompt.Operation).Observe(time.Since(start).Seconds())
	}()

	return c.breaker.execute(func() (string, error) {
		var resp string
		var err error

		_, _, _ = lo.AttemptWhileWithDelay(maxAttempts, c.retryDelay, func(i int, _ time.Duration) (error, bool) {
			if i > 0 {
				log.Warnf("%s api returned server error, retrying...", c.name)
			}
			resp, err = c.waitAndComplete(ctx, prompt)
			return err, isServerError(err)
		})

		return resp, err
	})
}

func (c *Client) waitAndComplete(ctx context.Context, prompt Prompt) (string, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return c.tryComplete(ctx, prompt)
}

func (c *Client) tryComplete(ctx context.Context, prompt Prompt) (string, error) {

	request := chatRequest{
		Model:       c.model,
		Temperature: lo.Ternary(prompt.Temperature > 0, prompt.Temperature, defaultTemperature),
		MaxTokens:   prompt.MaxTokens,
	}
	if prompt.System != "" {
		request.Messages = append(request.Messages, chatMessage{Role: "system", Content: prompt.System})
	}
	request.Messages = append(request.Messages, chatMessage{Role: "user", Content: prompt.User})
	if prompt.JSONObject {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chat.Error != nil {
		return "", fmt.Errorf("api error: %s", chat.Error.Message)
	}

	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from %s api", c.name)
	}

	return chat.Choices[0].Message.Content, nil
}

func isServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError
}

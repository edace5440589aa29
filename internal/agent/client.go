package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const jsonOnlyInstruction = "You respond with valid JSON only. Do not include markdown formatting, explanations, or any text outside of the JSON object."

// Client talks to a chat-completion API (Anthropic or OpenAI shaped) with
// rate limiting and retry. One client may serve many story sessions.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
	apiType    string // "anthropic" or "openai"
	logger     *slog.Logger
}

type Option func(*Client)

func WithRetry(maxRetries int) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		transport := c.httpClient.Transport
		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}
}

func WithRateLimit(requestsPerMinute int, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
	}
}

func WithAPIConfig(baseURL, model string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
		c.model = model
		if strings.Contains(baseURL, "openai") {
			c.apiType = "openai"
		} else {
			c.apiType = "anthropic"
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com/v1",
		model:   "claude-3-5-sonnet-20241022",
		httpClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
		maxRetries: 3,
		limiter:    rate.NewLimiter(rate.Limit(1), 1), // 60 req/min
		apiType:    "anthropic",
		logger:     slog.Default().With("component", "ai_client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("AI client initialized",
		"api_type", c.apiType,
		"base_url", c.baseURL,
		"model", c.model,
		"max_retries", c.maxRetries,
		"rate_limit", fmt.Sprintf("%v req/s", c.limiter.Limit()))

	return c
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, false)
}

func (c *Client) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, true)
}

func (c *Client) complete(ctx context.Context, prompt string, forceJSON bool) (string, error) {
	requestID := fmt.Sprintf("api_%d", time.Now().UnixNano())
	startTime := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Error("rate limit wait failed",
			"request_id", requestID,
			"error", err)
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	c.logger.Debug("rate limit passed",
		"request_id", requestID,
		"wait_duration_ms", time.Since(startTime).Milliseconds(),
		"limit_per_second", c.limiter.Limit(),
		"burst_capacity", c.limiter.Burst())

	operation := classifyPrompt(prompt)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			c.logger.Debug("retry backoff",
				"request_id", requestID,
				"attempt", attempt,
				"backoff_seconds", backoff.Seconds())

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				c.logger.Warn("request cancelled during backoff",
					"request_id", requestID,
					"attempt", attempt)
				return "", ctx.Err()
			}
		}

		attemptStart := time.Now()
		c.logger.Debug("attempting generation request",
			"request_id", requestID,
			"attempt", attempt,
			"operation", operation,
			"prompt_length", len(prompt),
			"force_json", forceJSON,
			"api_type", c.apiType,
			"model", c.model)

		response, err := c.doRequest(ctx, prompt, forceJSON)
		attemptDuration := time.Since(attemptStart)

		if err == nil {
			c.logger.Info("API request successful",
				"request_id", requestID,
				"attempt", attempt,
				"operation", operation,
				"duration_ms", attemptDuration.Milliseconds(),
				"response_length", len(response),
				"total_duration_ms", time.Since(startTime).Milliseconds())
			return response, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		c.logger.Warn("API request failed, will retry",
			"request_id", requestID,
			"attempt", attempt,
			"duration_ms", attemptDuration.Milliseconds(),
			"error", err)
	}

	c.logger.Error("API request failed after max retries",
		"request_id", requestID,
		"max_retries", c.maxRetries,
		"total_duration_ms", time.Since(startTime).Milliseconds(),
		"last_error", lastErr)

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// CompleteWithSystem makes a request with separate system and user prompts.
func (c *Client) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.completeWithSystem(ctx, systemPrompt, userPrompt, false)
}

// CompleteJSONWithSystem is CompleteWithSystem in JSON-only mode.
func (c *Client) CompleteJSONWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.completeWithSystem(ctx, systemPrompt, userPrompt, true)
}

func (c *Client) completeWithSystem(ctx context.Context, systemPrompt, userPrompt string, forceJSON bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	if forceJSON {
		systemPrompt = systemPrompt + "\n\n" + jsonOnlyInstruction
	}

	if c.apiType == "openai" {
		return c.doOpenAIRequest(ctx, userPrompt, forceJSON, systemPrompt)
	}
	return c.doAnthropicRequest(ctx, userPrompt, forceJSON, systemPrompt)
}

func (c *Client) doRequest(ctx context.Context, prompt string, forceJSON bool) (string, error) {
	if c.apiType == "openai" {
		return c.doOpenAIRequest(ctx, prompt, forceJSON, "")
	}
	return c.doAnthropicRequest(ctx, prompt, forceJSON, "")
}

func (c *Client) doOpenAIRequest(ctx context.Context, prompt string, forceJSON bool, systemPrompt string) (string, error) {
	if systemPrompt == "" && forceJSON {
		systemPrompt = jsonOnlyInstruction
	}
	messages := []map[string]string{
		{"role": "user", "content": prompt},
	}
	if systemPrompt != "" {
		messages = append([]map[string]string{
			{"role": "system", "content": systemPrompt},
		}, messages...)
	}

	requestBody := map[string]interface{}{
		"model":      c.model,
		"messages":   messages,
		"max_tokens": 4096,
	}
	if forceJSON {
		requestBody["response_format"] = map[string]string{"type": "json_object"}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	respBody, err := c.post(ctx, c.baseURL+"/chat/completions", headers, requestBody)
	if err != nil {
		return "", err
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	c.logger.Debug("OpenAI request completed",
		"prompt_tokens", response.Usage.PromptTokens,
		"completion_tokens", response.Usage.CompletionTokens,
		"total_tokens", response.Usage.TotalTokens)

	return response.Choices[0].Message.Content, nil
}

func (c *Client) doAnthropicRequest(ctx context.Context, prompt string, forceJSON bool, systemPrompt string) (string, error) {
	if systemPrompt == "" && forceJSON {
		systemPrompt = jsonOnlyInstruction
	}
	requestBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": 4096,
	}
	if systemPrompt != "" {
		requestBody["system"] = systemPrompt
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}

	respBody, err := c.post(ctx, c.baseURL+"/messages", headers, requestBody)
	if err != nil {
		return "", err
	}

	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	c.logger.Debug("Anthropic request completed",
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens)

	return response.Content[0].Text, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, requestBody any) ([]byte, error) {
	body, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("HTTP response received",
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(httpStart).Milliseconds(),
		"body_size", len(respBody))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// classifyPrompt tags the request for log readability.
func classifyPrompt(prompt string) string {
	promptLower := strings.ToLower(prompt)

	switch {
	case strings.Contains(promptLower, "narrative structure requirements"):
		return "scene_generation"
	case strings.Contains(promptLower, "narrative continuity"):
		return "continuity_analysis"
	case strings.Contains(promptLower, "story premise"):
		return "premise_development"
	case strings.Contains(promptLower, "write"):
		return "content_writing"
	case strings.Contains(promptLower, "analyze"):
		return "content_analysis"
	default:
		return "general_request"
	}
}

// Package summarizer calls the Gemini generateContent endpoint and normalizes
// every outcome into a models.SummaryResponse. It never returns a Go error.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/breezy/models"
)

const (
	MinContentLength = 50
	MaxContentLength = 25000

	Temperature      = 0.2
	MaxOutputTokens  = 1024
	ResponseMimeType = "text/plain"

	MsgMissingAPIKey     = "API key is required"
	MsgNotEnoughContent  = "Not enough content to summarize"
	MsgGenerationFailed  = "Failed to generate summary"
	MsgUnexpectedFailure = "An error occurred"
)

// Config holds the configuration for the Gemini client.
type Config struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Client is the Gemini summarization client.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new client, filling defaults for empty fields.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = models.DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = models.DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = models.DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Part is a single text part of a message.
type Part struct {
	Text string `json:"text"`
}

// Content is one turn of a conversation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// GenerateResponse covers both the success and the error body.
type GenerateResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Summarize validates the input, calls the model once and maps the outcome.
func (c *Client) Summarize(ctx context.Context, apiKey, content string) models.SummaryResponse {
	if apiKey == "" {
		return models.SummaryFailure(MsgMissingAPIKey)
	}
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		return models.SummaryFailure(MsgNotEnoughContent)
	}

	reqBody := GenerateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: BuildPrompt(Truncate(content))}}},
		},
		GenerationConfig: GenerationConfig{
			Temperature:      Temperature,
			MaxOutputTokens:  MaxOutputTokens,
			ResponseMimeType: ResponseMimeType,
		},
	}

	summary, err := c.generate(ctx, apiKey, reqBody)
	if err != nil {
		c.config.Logger.Warn("summarization failed", "model", c.config.Model, "error", err)
		msg := err.Error()
		if msg == "" {
			msg = MsgUnexpectedFailure
		}
		return models.SummaryFailure(msg)
	}
	return models.SummarySuccess(summary)
}

func (c *Client) generate(ctx context.Context, apiKey string, reqBody GenerateRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(apiKey), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", redactKey(err, apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var genResp GenerateResponse
	decodeErr := json.Unmarshal(body, &genResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The provider's message is shown to the user as is.
		msg := MsgGenerationFailed
		if decodeErr == nil && genResp.Error != nil && genResp.Error.Message != "" {
			msg = genResp.Error.Message
		}
		c.config.Logger.Debug("provider rejected request", "status", resp.StatusCode)
		return "", errors.New(msg)
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", decodeErr)
	}

	c.config.Logger.Debug("summary generated", "model", c.config.Model, "status", resp.StatusCode, "duration", time.Since(start))
	return firstText(genResp), nil
}

func (c *Client) endpointURL(apiKey string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.Endpoint, url.PathEscape(c.config.Model), url.QueryEscape(apiKey))
}

// firstText reads candidates[0].content.parts[0].text, or "".
func firstText(resp GenerateResponse) string {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

// redactKey keeps the API key out of url.Error messages.
func redactKey(err error, apiKey string) error {
	msg := err.Error()
	redacted := strings.ReplaceAll(msg, url.QueryEscape(apiKey), "REDACTED")
	redacted = strings.ReplaceAll(redacted, apiKey, "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}

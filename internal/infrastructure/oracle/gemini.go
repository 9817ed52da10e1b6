package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/application/analysis"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/infrastructure/config"
)

const maxResponseSize = 1 << 20 // 1 MB

// GeminiClient calls the Gemini generateContent API to produce advisory
// text for analysis reports. An empty API key leaves the client disabled.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ analysis.Oracle = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed oracle from configuration
func NewGeminiClient(cfg config.OracleConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether an API key is configured
func (c *GeminiClient) Enabled() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Advise sends the prompt to the model and returns the generated text
func (c *GeminiClient) Advise(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", shared.ErrUpstreamUnavailable
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("oracle request failed", zap.Error(err))
		return "", shared.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("oracle returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model),
		)
		return "", shared.ErrUpstreamUnavailable
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		c.logger.Warn("oracle returned error payload", zap.String("message", parsed.Error.Message))
		return "", shared.ErrUpstreamUnavailable
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", shared.ErrUpstreamUnavailable
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Package generator holds the outbound adapter to the multimodal model
// provider. Everything provider-specific (endpoint, headers, retry policy,
// response envelope) lives here; callers only see raw response text.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces"
)

var (
	ErrMissingAnthropicAPIKey = errors.New("missing ANTHROPIC_API_KEY")
	// ErrGeneratorTransport covers every provider-side failure: network
	// errors, non-200 statuses, rate limit exhaustion, API error payloads.
	ErrGeneratorTransport = errors.New("generator request failed")
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultTimeout   = 2 * time.Minute
	anthropicVersion = "2023-06-01"
	maxRetries       = 3
)

type AnthropicGateway struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	mockMode   bool
}

var _ interfaces.IGeneratorGateway = (*AnthropicGateway)(nil)

func NewAnthropicGateway(apiKey string) (*AnthropicGateway, error) {
	if isGeneratorMockEnabled() {
		log.Printf("[generator][gateway] mock mode enabled")
		return &AnthropicGateway{mockMode: true}, nil
	}

	if apiKey == "" {
		log.Printf("[generator][gateway] missing ANTHROPIC_API_KEY")
		return nil, ErrMissingAnthropicAPIKey
	}

	g := &AnthropicGateway{
		apiKey:     apiKey,
		baseURL:    getenvDefault("ANTHROPIC_BASE_URL", defaultBaseURL),
		model:      getenvDefault("GENERATOR_MODEL", defaultModel),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	log.Printf("[generator][gateway] Anthropic client initialized model=%s", g.model)
	return g, nil
}

type anthropicRequest struct {
	Model     string                        `json:"model"`
	MaxTokens int                           `json:"max_tokens"`
	System    string                        `json:"system,omitempty"`
	Messages  []interfaces.GeneratorMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate runs one Messages call and concatenates the text blocks of the
// response. Transient failures (network, 429, 5xx) are retried with
// exponential backoff; anything left after the retry budget comes back
// wrapped in ErrGeneratorTransport.
func (g *AnthropicGateway) Generate(ctx context.Context, req interfaces.GenerationRequest) (string, error) {
	if g != nil && g.mockMode {
		log.Printf("[generator][gateway] mock generate system_len=%d messages=%d", len(req.System), len(req.Messages))
		return mockEstimateJSON, nil
	}
	if g == nil || g.httpClient == nil {
		return "", fmt.Errorf("%w: gateway not configured", ErrGeneratorTransport)
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     g.model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  req.Messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGeneratorTransport, err)
	}

	start := time.Now()
	log.Printf("[generator][gateway] generate start model=%s payload_len=%d", g.model, len(payload))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrGeneratorTransport, ctx.Err())
			}
		}

		text, retryable, err := g.doRequest(ctx, payload)
		if err == nil {
			log.Printf("[generator][gateway] generate success elapsed=%v response_len=%d", time.Since(start), len(text))
			return text, nil
		}
		if !retryable {
			log.Printf("[generator][gateway] generate failed err=%v", err)
			return "", err
		}
		lastErr = err
	}

	log.Printf("[generator][gateway] retries exhausted elapsed=%v err=%v", time.Since(start), lastErr)
	return "", fmt.Errorf("%w: retries exhausted: %v", ErrGeneratorTransport, lastErr)
}

func (g *AnthropicGateway) doRequest(ctx context.Context, payload []byte) (text string, retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("%w: build request: %v", ErrGeneratorTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrGeneratorTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: read response: %v", ErrGeneratorTransport, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("%w: status %d", ErrGeneratorTransport, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("%w: status %d: %s", ErrGeneratorTransport, resp.StatusCode, truncate(string(body), 300))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("%w: parse response: %v", ErrGeneratorTransport, err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("%w: %s", ErrGeneratorTransport, parsed.Error.Message)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), false, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func isGeneratorMockEnabled() bool {
	for _, key := range []string{"GENERATOR_MOCK", "ANTHROPIC_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

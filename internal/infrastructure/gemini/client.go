package gemini

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"
)

// Client wraps the official genai SDK for the enrichment pipeline. It asks
// for application/json output and returns the first candidate's text; JSON
// extraction is left to the caller.
type Client struct {
	cli         *genai.Client
	model       string
	rateLimiter *rate.Limiter
	timeout     time.Duration
	debug       bool
}

// Config carries the recognized client options.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// Requests per second against the Gemini API, with Burst absorbing
	// short admin-panel search spikes.
	RPS   float64
	Burst int
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash-latest"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RPS == 0 {
		cfg.RPS = 1
	}
	if cfg.Burst == 0 {
		cfg.Burst = 3
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		cli:         cli,
		model:       cfg.Model,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		timeout:     cfg.Timeout,
	}, nil
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends the prompt and returns the raw text of the first
// candidate. Transient failures are retried up to 3 times with linear
// backoff; each attempt consumes a rate limiter token.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.debug {
		log.Printf("[GEMINI] request to %s: %d bytes", c.model, len(prompt))
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			if c.debug {
				log.Printf("[GEMINI] response: %d bytes", len(text))
			}
			return text, nil
		}

		log.Printf("[GEMINI] attempt %d failed: %v", attempt, err)
		lastErr = err

		if attempt < 3 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt*500) * time.Millisecond):
			}
		}
	}

	return "", lastErr
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion from model %s", c.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

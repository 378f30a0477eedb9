// ABOUTME: HTTP client for a hosted text-generation endpoint (Hugging Face Inference API shape).
// ABOUTME: Posts a prompt and returns generated_text, retrying transient failures with backoff.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultBaseURL      = "https://api-inference.huggingface.co/models/"
	DefaultModelID      = "mistralai/Mistral-7B-Instruct-v0.3"
	DefaultMaxNewTokens = 1024
	DefaultTemperature  = 0.1
	DefaultTimeout      = 60 * time.Second
)

// Options configures a Client. Zero values fall back to the defaults above,
// except Temperature where only nil or negative means default.
type Options struct {
	BaseURL      string
	ModelID      string
	Token        string
	MaxNewTokens int
	Temperature  *float64
	Timeout      time.Duration
	MaxRetries   int
}

// Client calls the text-generation endpoint.
type Client struct {
	url          string
	token        string
	maxNewTokens int
	temperature  float64
	maxRetries   int
	client       *http.Client
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth retrying (429 or 5xx).
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

// NewClient creates a Client for opts.ModelID under opts.BaseURL.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ModelID == "" {
		opts.ModelID = DefaultModelID
	}
	if opts.MaxNewTokens <= 0 {
		opts.MaxNewTokens = DefaultMaxNewTokens
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil && *opts.Temperature >= 0 {
		temperature = *opts.Temperature
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Client{
		url:          strings.TrimRight(opts.BaseURL, "/") + "/" + strings.TrimLeft(opts.ModelID, "/"),
		token:        opts.Token,
		maxNewTokens: opts.MaxNewTokens,
		temperature:  temperature,
		maxRetries:   opts.MaxRetries,
		client:       &http.Client{Timeout: opts.Timeout},
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Generate sends prompt to the model and returns the generated text.
// A 2xx response of an unexpected shape yields "" with no error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens:   c.maxNewTokens,
			Temperature:    c.temperature,
			DoSample:       false,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var text string
	op := func() error {
		t, err := c.post(ctx, body)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && !se.Retryable() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		text = t
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	return generatedText(respBody), nil
}

// generatedText pulls generated_text out of either a list whose first
// element carries it or a bare object. Anything else is "".
func generatedText(body []byte) string {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ""
	}

	switch v := decoded.(type) {
	case []any:
		if len(v) == 0 {
			return ""
		}
		if first, ok := v[0].(map[string]any); ok {
			s, _ := first["generated_text"].(string)
			return s
		}
	case map[string]any:
		s, _ := v["generated_text"].(string)
		return s
	}
	return ""
}

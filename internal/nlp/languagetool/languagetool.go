// Package languagetool implements nlp.GrammarChecker against a LanguageTool
// HTTP server (the public API or a self-hosted instance).
package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jonathan/transcript-scorer/internal/nlp"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "transcript-scorer/1.0"

var _ nlp.GrammarChecker = (*Client)(nil)

// Error represents a failed LanguageTool call.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("languagetool %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("languagetool %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	Language           string
	Timeout            time.Duration
	UserAgent          string
	DisabledCategories []string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Language:  "en-US",
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Match is one issue reported by LanguageTool.
type Match struct {
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Rule    struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
	} `json:"rule"`
}

type checkResponse struct {
	Matches []Match `json:"matches"`
}

// Client talks to a LanguageTool server.
type Client struct {
	baseURL string
	opts    *Options
	http    *http.Client
}

// New returns a Client for the server at baseURL, e.g.
// "https://api.languagetool.org".
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{Endpoint: baseURL, Message: "invalid base URL", Cause: err}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Matches returns every issue LanguageTool reports for text.
func (c *Client) Matches(ctx context.Context, text string) ([]Match, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.opts.Language)
	if len(c.opts.DisabledCategories) > 0 {
		form.Set("disabledCategories", strings.Join(c.opts.DisabledCategories, ","))
	}

	body, err := c.do(ctx, http.MethodPost, "/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Endpoint: "/v2/check", Message: "failed to decode response", Cause: err}
	}
	return resp.Matches, nil
}

// Check implements nlp.GrammarChecker.
func (c *Client) Check(ctx context.Context, text string) (int, error) {
	matches, err := c.Matches(ctx, text)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// Ping verifies the server is reachable and knows at least one language.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, "/v2/languages", nil)
	if err != nil {
		return err
	}

	var langs []struct {
		LongCode string `json:"longCode"`
	}
	if err := json.Unmarshal(body, &langs); err != nil {
		return &Error{Endpoint: "/v2/languages", Message: "failed to decode response", Cause: err}
	}
	if len(langs) == 0 {
		return &Error{Endpoint: "/v2/languages", Message: "server reports no languages"}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Endpoint: path, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Endpoint: path, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return data, nil
}

// Package fetch retrieves a transcript published at a URL. Plain-text
// responses are used as-is; HTML pages are reduced to their main text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TranscriptScorer/1.0)"

// DefaultMaxBytes bounds the size of a fetched document.
const DefaultMaxBytes = 2 << 20

// Result holds the fetched document and the transcript text taken from it.
type Result struct {
	URL         string
	Body        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	// Selectors are tried in order to locate the transcript in an HTML page.
	Selectors []string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
		Selectors: TranscriptSelectors(),
	}
}

// Transcript downloads urlStr and returns the transcript it contains.
func Transcript(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{
		Timeout:   opts.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/plain, text/html;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	if int64(len(body)) > opts.MaxBytes {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("document exceeds %d bytes", opts.MaxBytes)}
	}
	result.Body = string(body)

	if isHTML(result.ContentType, body) {
		text, err := ExtractText(result.Body, opts.Selectors)
		if err != nil {
			return result, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
		}
		result.Text = text
	} else {
		result.Text = cleanWhitespace(result.Body)
	}

	return result, nil
}

// ExtractText parses HTML and returns the text of the first element matching
// one of selectors, falling back to the body. Lines are joined with a single
// space so that sentence punctuation is preserved for scoring.
func ExtractText(html string, selectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, aside, .ad, .advertisement, .cookie-banner").Remove()

	var content *goquery.Selection
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// TranscriptSelectors returns selectors for pages that publish a transcript.
func TranscriptSelectors() []string {
	return []string{
		"[data-transcript]",
		".transcript",
		"#transcript",
		"article",
		"main",
		".content",
		"#content",
	}
}

func isHTML(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/html", "application/xhtml+xml":
			return true
		case "text/plain":
			return false
		}
	}
	return strings.HasPrefix(http.DetectContentType(body), "text/html")
}

// cleanWhitespace collapses each line and joins the non-empty ones.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, " ")
}

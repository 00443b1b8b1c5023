// Package analysis is the HTTP client for the remote resume analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-roaster/internal/schemas"
	"github.com/jonathan/resume-roaster/internal/types"
)

// DefaultTimeout is the default request timeout for an analysis call.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for analysis requests.
const DefaultUserAgent = "ResumeRoaster/1.0"

// AnalyzePath is appended to the base URL of the service.
const AnalyzePath = "/analyze"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Request is one upload to the analysis service.
type Request struct {
	FileName string
	Data     []byte
	Mode     types.Mode
}

// Client posts resumes to {baseURL}/analyze.
type Client struct {
	endpoint  string
	userAgent string
	headers   map[string]string
	http      *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{
			URL:     baseURL,
			Message: "invalid base URL",
			Cause:   err,
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		endpoint:  strings.TrimRight(parsed.String(), "/") + AnalyzePath,
		userAgent: userAgent,
		headers:   opts.Headers,
		http:      httpClient,
	}, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze uploads the file and mode as multipart form data and decodes the JSON reply.
// A non-2xx reply yields *StatusError; anything else that goes wrong yields *Error.
func (c *Client) Analyze(ctx context.Context, req Request) (*types.AnalyzeResponse, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, &Error{URL: c.endpoint, Message: "failed to encode form", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, &Error{URL: c.endpoint, Message: "failed to create request", Cause: err}
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &Error{URL: c.endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{URL: c.endpoint, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: c.endpoint, StatusCode: resp.StatusCode, Body: truncate(string(payload), 512)}
	}

	if err := schemas.ValidateAnalyzeResponse(payload); err != nil {
		return nil, &Error{URL: c.endpoint, Message: "malformed response body", Cause: err}
	}

	var out types.AnalyzeResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &Error{URL: c.endpoint, Message: "failed to decode response body", Cause: err}
	}
	return &out, nil
}

func encodeForm(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := req.FileName
	if name == "" {
		name = "resume.pdf"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.Data); err != nil {
		return nil, "", err
	}

	if err := w.WriteField("mode", string(req.Mode)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

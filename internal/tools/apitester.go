package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// APIRequest is a request composed on the API tester page
type APIRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// APIResponse is what the tester shows after a request completes
type APIResponse struct {
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       string              `json:"body"`
	Truncated  bool                `json:"truncated,omitempty"`
	Duration   time.Duration       `json:"duration"`
}

// APIClientOptions configures an APIClient
type APIClientOptions struct {
	Timeout time.Duration
	// RatePerSecond limits outbound requests; bursts of the same size are allowed
	RatePerSecond float64
	MaxBodyBytes  int64
}

// APIClient sends user-composed HTTP requests
type APIClient struct {
	client  *http.Client
	limiter *rate.Limiter
	maxBody int64
}

// NewAPIClient creates an APIClient with its own cookie jar
func NewAPIClient(opts APIClientOptions) (*APIClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	burst := int(opts.RatePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &APIClient{
		client:  &http.Client{Timeout: opts.Timeout, Jar: jar},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst),
		maxBody: opts.MaxBodyBytes,
	}, nil
}

// Send performs req, waiting for the rate limiter first
func (c *APIClient) Send(ctx context.Context, req APIRequest) (APIResponse, error) {
	httpReq, err := buildAPIRequest(ctx, req)
	if err != nil {
		return APIResponse{}, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return APIResponse{}, fmt.Errorf("rate limit: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return APIResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return APIResponse{}, fmt.Errorf("read response: %w", err)
	}
	out := APIResponse{
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Duration:   time.Since(start),
	}
	if int64(len(body)) > c.maxBody {
		body = body[:c.maxBody]
		out.Truncated = true
	}
	out.Body = string(body)
	return out, nil
}

func buildAPIRequest(ctx context.Context, req APIRequest) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	if !allowedMethods[method] {
		return nil, invalidf("unsupported method %q", req.Method)
	}
	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil {
		return nil, invalidf("bad URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, invalidf("URL must use http or https")
	}
	if u.Host == "" {
		return nil, invalidf("URL has no host")
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}

// ParseHeaderLines reads "Name: value" lines, skipping blanks and # comments
func ParseHeaderLines(text string) (map[string]string, error) {
	headers := map[string]string{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, invalidf("header line %d: expected \"Name: value\"", i+1)
		}
		headers[http.CanonicalHeaderKey(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	return headers, nil
}

// FormatHeaders renders headers one per line in name order
func FormatHeaders(h map[string][]string) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		for _, v := range h[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, v)
		}
	}
	return b.String()
}

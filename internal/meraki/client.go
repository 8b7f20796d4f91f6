package meraki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	runerrors "github.com/merakitools/meraudit/internal/errors"
)

const (
	// DefaultBaseURL is the production Dashboard API endpoint.
	DefaultBaseURL = "https://api.meraki.com/api/v1"

	authHeader     = "X-Cisco-Meraki-API-Key"
	maxRateRetries = 3
)

// Client is a thin Dashboard API client. It handles API-key auth,
// JSON decoding, Link-header pagination, and HTTP 429 waits; anything
// beyond that is the caller's problem.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client

	// sleep is swapped out in tests to avoid real 429 waits.
	sleep func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Dashboard API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// NewClient creates a Dashboard API client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path resolves the spec's path template against a scope identifier.
func (s CallSpec) Path(id string) string {
	r := strings.NewReplacer(
		"{organizationId}", url.PathEscape(id),
		"{networkId}", url.PathEscape(id),
		"{serial}", url.PathEscape(id),
	)
	return r.Replace(s.PathTemplate)
}

// Call issues the API call described by spec against one scope
// identifier, with filters as query parameters. List responses are
// followed across pagination links and returned as a single slice.
func (c *Client) Call(ctx context.Context, spec CallSpec, id string, filters map[string]any) (any, error) {
	query := url.Values{}
	for k, v := range filters {
		query.Set(k, fmt.Sprint(v))
	}
	return c.get(ctx, spec.Path(id), query)
}

// get fetches one resource, transparently following rel=next links for
// list-shaped responses.
func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var merged []any
	paged := false
	for {
		body, next, err := c.getPage(ctx, u)
		if err != nil {
			return nil, err
		}

		var decoded any
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, runerrors.NewAPICall("", 0, fmt.Sprintf("decoding response: %v", err))
		}

		list, isList := decoded.([]any)
		if !isList {
			if paged {
				return nil, runerrors.NewAPICall("", 0, "paginated response is not a list")
			}
			return decoded, nil
		}
		merged = append(merged, list...)

		if next == "" {
			return merged, nil
		}
		u = next
		paged = true
	}
}

func (c *Client) getPage(ctx context.Context, u string) (body []byte, next string, err error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, "", runerrors.NewAPICall("", 0, fmt.Sprintf("building request: %v", err))
		}
		req.Header.Set(authHeader, c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, "", runerrors.NewAPICall("", 0, err.Error())
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, "", runerrors.NewAPICall("", resp.StatusCode, fmt.Sprintf("reading response: %v", err))
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRateRetries {
			c.sleep(retryAfter(resp))
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, "", runerrors.NewAPICall("", resp.StatusCode, apiMessage(body))
		}
		return body, linkNext(resp.Header.Get("Link")), nil
	}
}

// retryAfter honors the Retry-After header on 429 responses, with a
// one second floor when the header is absent or unparsable.
func retryAfter(resp *http.Response) time.Duration {
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}

// apiMessage extracts the error text the Dashboard API wraps in an
// {"errors": [...]} body, falling back to the raw body.
func apiMessage(body []byte) string {
	var wrapped struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Errors) > 0 {
		return strings.Join(wrapped.Errors, "; ")
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "request failed"
	}
	return msg
}

// linkNext parses the rel=next target out of an RFC 5988 Link header.
func linkNext(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		if len(fields) < 2 {
			continue
		}
		u := strings.Trim(strings.TrimSpace(fields[0]), "<>")
		for _, param := range fields[1:] {
			if strings.TrimSpace(param) == `rel=next` || strings.TrimSpace(param) == `rel="next"` {
				return u
			}
		}
	}
	return ""
}

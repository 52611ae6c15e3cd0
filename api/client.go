// Package api is a client of the Wellets backend REST API.
//
// Every call authenticates with the session token (see package auth), and
// decodes the JSON response into the records of package wellets.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-kit/log"
)

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client calls the backend at BaseURL on behalf of the user owning Token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a client logging every HTTP exchange to logger.
func New(baseURL, token string, timeout time.Duration, logger log.Logger) *Client {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: http.DefaultTransport, logger: logger},
		},
	}
}

// do sends in (if not nil) as JSON and decodes the response into out (if not nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	addr := c.BaseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr, body)
	if err != nil {
		return fmt.Errorf("building request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// list gets a list that the backend returns either bare, or wrapped in an
// object under key (e.g. {"wallets": [...]}).
func (c *Client) list(ctx context.Context, path string, query url.Values, key string, out any) error {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '[' || string(raw) == "null" {
		return unmarshal(path, raw, out)
	}

	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	jval, err := jsonpath.Get("$."+key, jobj)
	if err != nil {
		return fmt.Errorf("decoding %s: no %q list: %w", path, key, err)
	}
	b, err := json.Marshal(jval)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return unmarshal(path, b, out)
}

func unmarshal(path string, data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// escape a path segment.
func seg(id string) string { return url.PathEscape(id) }

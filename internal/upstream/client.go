// Package upstream implements the HTTP client for the remote top-up backend.
// Every call is a single attempt; retry policy belongs to the caller.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 4 << 10

// Client issues authenticated JSON requests against the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a backend client for the given base URL. The timeout caps
// every request end to end; zero falls back to 15s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do performs one request. A non-empty token is attached as a bearer
// credential. The token is never written to logs or error messages.
func (c *Client) do(ctx context.Context, method, path string, token string, body, out any) error {
	if c == nil || c.baseURL == "" {
		return &Error{Kind: KindTransport, Message: "upstream client not configured"}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: transportMessage(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Message: err.Error()}
	}
	return nil
}

// transportMessage strips the url.Error wrapper so messages stay compact.
func transportMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// serverMessage extracts a human readable message from an error response.
// Backends answer either {"message": "..."} or a bare string.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}

// minorToMajor converts kobo to the naira figure the backend expects.
func minorToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// majorToMinor converts a naira figure from the backend into kobo.
func majorToMinor(major float64) int64 {
	if major >= 0 {
		return int64(major*100 + 0.5)
	}
	return int64(major*100 - 0.5)
}

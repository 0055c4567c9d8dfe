// Package api is the Wisal dashboard API client. A single Client carries the
// bearer credential, forces the dashboard locale on every request, and
// normalizes every failure into the uniform Error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is the Wisal dashboard API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	locale string

	mu             sync.RWMutex
	credential     string
	onUnauthorized func()
}

// NewClient creates a new dashboard API client. The cookie jar carries the
// refresh cookie used for silent session renewal.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		locale: "ar",
	}
}

// SetLocale overrides the Accept-Language value sent on every request
func (c *Client) SetLocale(locale string) {
	if locale != "" {
		c.locale = locale
	}
}

// SetTimeout overrides the request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.HTTPClient.Timeout = d
}

// SetCredential stores the bearer credential attached to every request.
// The client never decides the value, only holds it.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = token
}

// ClearCredential removes the stored bearer credential
func (c *Client) ClearCredential() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = ""
}

// Credential returns the stored bearer credential, empty when signed out
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// OnUnauthorized registers a hook invoked after a 401 response cleared the
// credential. The hook runs before the error is returned to the caller.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorizedHook() func() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

// do performs an HTTP request and decodes the response into target.
// Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.prepare(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Message: ServerUnreachableMessage, Cause: err}
	}

	return c.parseResponse(resp, target)
}

// prepare sets the headers shared by every outgoing request. Accept-Language
// always wins over caller-supplied values.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Accept-Language", c.locale)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cred := c.Credential(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}
}

// parseResponse decodes a success body into target, or turns an error
// response into *Error. A 401 clears the credential and fires the
// unauthorized hook before returning.
func (c *Client) parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: messageFromBody(body),
		}
		if json.Valid(body) {
			apiErr.Payload = json.RawMessage(body)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.ClearCredential()
			if hook := c.unauthorizedHook(); hook != nil {
				hook()
			}
		}

		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get is a convenience wrapper for GET requests
func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, target)
}

// post is a convenience wrapper for POST requests
func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, target)
}

// put is a convenience wrapper for PUT requests
func (c *Client) put(ctx context.Context, path string, body, target interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, target)
}

// delete is a convenience wrapper for DELETE requests
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

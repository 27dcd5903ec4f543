package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"codeberg.org/pyscribe/server/pyscribe/conversations"
)

// the calls the controller makes against the backend
type Backend interface {
	Translate(ctx context.Context, prompt string) (io.ReadCloser, error)
	SaveConversation(ctx context.Context, req conversations.CreateRequest) (*Entry, error)
	ListConversations(ctx context.Context, sessionID string, limit int) ([]Entry, error)
	DeleteConversation(ctx context.Context, id string) error
}

// talks to the pyscribe REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// endpoint is the server origin, e.g. http://localhost:8080
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		// no timeout: a translation stream stays open until the model finishes
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// opens the translate stream; the caller owns and must close the body
func (c *Client) Translate(ctx context.Context, prompt string) (io.ReadCloser, error) {
	payload, err := json.Marshal(translateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close() //nolint:errcheck

		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	return resp.Body, nil
}

func (c *Client) SaveConversation(ctx context.Context, body conversations.CreateRequest) (*Entry, error) {
	var entry Entry

	if err := c.doJSON(ctx, http.MethodPost, "/api/conversation", body, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (c *Client) ListConversations(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	query := url.Values{}

	if sessionID != "" {
		query.Set("session_id", sessionID)
	}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/conversation"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var entries []Entry

	if err := c.doJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/conversation/"+url.PathEscape(id), nil, nil)
}

// sends body as JSON (when non-nil) and decodes a 2xx answer into out (when non-nil)
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// extracts a readable message from a {error, message, details} body, or the raw text
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && (body.Message != "" || body.Error != "") {
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}

		if body.Details != "" {
			msg += ": " + body.Details
		}

		return msg
	}

	return strings.TrimSpace(string(raw))
}

const maxErrorBody = 64 << 10

type translateRequest struct {
	Prompt string `json:"prompt"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

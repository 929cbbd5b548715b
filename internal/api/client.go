// Package api is the client for the practice-management backend. The
// calendar engine only needs three calls: list sessions, fetch one
// session, and commit a full-record update.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmoraes/agenda/internal/schedule"
)

// ErrNotFound is returned when the backend reports a missing session.
var ErrNotFound = errors.New("session not found")

// Client talks to the practice-management REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client. The base URL is required; the token is attached
// as a bearer credential when set.
func New(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}, nil
}

// ListSessions fetches all sessions and projects them into the local
// calendar shape.
func (c *Client) ListSessions(ctx context.Context) ([]schedule.Session, error) {
	var records []SessionRecord
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &records); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	sessions := make([]schedule.Session, len(records))
	for i := range records {
		sessions[i] = records[i].ToSession()
	}
	return sessions, nil
}

// GetSession fetches the authoritative record for one session. A commit
// re-reads the record first so fields not tracked locally are not
// clobbered by the full update.
func (c *Client) GetSession(ctx context.Context, id int64) (*SessionRecord, error) {
	var record SessionRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", id), nil, &record); err != nil {
		return nil, fmt.Errorf("fetching session %d: %w", id, err)
	}
	return &record, nil
}

// UpdateSession submits a full-record update. Anything other than a 2xx
// response means the commit failed.
func (c *Client) UpdateSession(ctx context.Context, id int64, payload UpdatePayload) error {
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sessions/%d", id), payload, nil); err != nil {
		return fmt.Errorf("updating session %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

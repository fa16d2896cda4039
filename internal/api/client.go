package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

// Client talks to the planner backend, which exposes the two item
// collections as independent flat resources under /api/events and
// /api/tasks. Identifiers are assigned by the backend on create and are
// only unique within one collection.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client for the given base URL
// (e.g. "http://localhost:3001").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// do performs one JSON request. A nil body sends no payload; a nil out
// discards the response body after the status check.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrRemote, method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// ListEvents fetches every record in the events collection.
func (c *Client) ListEvents(ctx context.Context) ([]domain.EventRecord, error) {
	var recs []domain.EventRecord
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateEvent stores a new record and returns it with the assigned id.
func (c *Client) CreateEvent(ctx context.Context, rec domain.EventRecord) (domain.EventRecord, error) {
	var created domain.EventRecord
	if err := c.do(ctx, http.MethodPost, "/api/events", rec, &created); err != nil {
		return domain.EventRecord{}, err
	}
	return created, nil
}

// ReplaceEvent overwrites the record with the given id in full.
func (c *Client) ReplaceEvent(ctx context.Context, id string, rec domain.EventRecord) error {
	return c.do(ctx, http.MethodPut, "/api/events/"+id, rec, nil)
}

// DeleteEvent removes the record with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+id, nil, nil)
}

// ListTasks fetches every record in the tasks collection.
func (c *Client) ListTasks(ctx context.Context) ([]domain.TaskRecord, error) {
	var recs []domain.TaskRecord
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateTask stores a new record and returns it with the assigned id.
func (c *Client) CreateTask(ctx context.Context, rec domain.TaskRecord) (domain.TaskRecord, error) {
	var created domain.TaskRecord
	if err := c.do(ctx, http.MethodPost, "/api/tasks", rec, &created); err != nil {
		return domain.TaskRecord{}, err
	}
	return created, nil
}

// ReplaceTask overwrites the record with the given id in full.
func (c *Client) ReplaceTask(ctx context.Context, id string, rec domain.TaskRecord) error {
	return c.do(ctx, http.MethodPut, "/api/tasks/"+id, rec, nil)
}

// DeleteTask removes the record with the given id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

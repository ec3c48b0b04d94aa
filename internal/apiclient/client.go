// Package apiclient talks to the activities API over HTTP: list the catalog,
// sign a participant up and unregister one.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Client is a thin wrapper over http.Client bound to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New constructs a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListActivities handles GET /activities.
// Any non-200 status is a ServerError.
func (c *Client) ListActivities(ctx context.Context) (model.Catalog, error) {
	const op = "list activities"

	status, body, err := c.do(ctx, op, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, serverError(op, status, body)
	}
	if err := validateCatalog(body); err != nil {
		return nil, &MalformedResponseError{Op: op, StatusCode: status, Err: err}
	}

	var catalog model.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, &MalformedResponseError{Op: op, StatusCode: status, Err: err}
	}
	if catalog == nil {
		catalog = model.Catalog{}
	}
	return catalog, nil
}

// Signup handles POST /activities/{activity}/signup?email={email} and
// returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	const op = "signup"

	status, body, err := c.do(ctx, op, http.MethodPost, activityPath(activity, "signup"), emailQuery(email))
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", serverError(op, status, body)
	}

	var resp model.MessageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &MalformedResponseError{Op: op, StatusCode: status, Err: err}
	}
	return resp.Message, nil
}

// Unregister handles DELETE /activities/{activity}/unregister?email={email}.
// The success body is ignored.
func (c *Client) Unregister(ctx context.Context, activity, email string) error {
	const op = "unregister"

	status, body, err := c.do(ctx, op, http.MethodDelete, activityPath(activity, "unregister"), emailQuery(email))
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return serverError(op, status, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return resp.StatusCode, body, nil
}

// serverError decodes an optional {"detail": "..."} body. A body that is not
// JSON, or whose detail is not a string, yields an empty Detail so callers
// fall back to their generic message.
func serverError(op string, status int, body []byte) error {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	se := &ServerError{Op: op, StatusCode: status}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return se
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		se.Detail = detail
	}
	return se
}

func activityPath(activity, action string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action
}

func emailQuery(email string) url.Values {
	return url.Values{"email": []string{email}}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// Package backend is the client for the remote business admin API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 4 << 20

var (
	// ErrFetchFailed is returned for any failed listing or detail read.
	ErrFetchFailed = errors.New("failed to fetch business data")
	// ErrUnavailable is returned when the login call could not complete.
	ErrUnavailable = errors.New("login service unavailable")
)

// tokenPaths are the places the login response may carry the access token,
// in lookup order.
var tokenPaths = []string{"data.access_token", "access_token", "data.token"}

// totalPaths are the places the listing response may carry the total count.
var totalPaths = []string{"data.total", "data.totalCount", "data.count", "total"}

// LoginError is a rejected login. Message is safe to show to the operator.
type LoginError struct {
	Status  int
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Client talks to the business admin API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. Every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Login exchanges the credential pair for a session token.
func (c *Client) Login(ctx context.Context, identifier, secret string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"userName": identifier,
		"password": secret,
	})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading login response: %w", ErrUnavailable, err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: login response is not JSON (status %d)", ErrUnavailable, resp.StatusCode)
	}

	token := firstString(body, tokenPaths)
	if resp.StatusCode >= 300 || token == "" {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = "Login failed"
		}
		return "", &LoginError{Status: resp.StatusCode, Message: msg}
	}
	return token, nil
}

// ListBusinesses returns the given page of business summaries.
func (c *Client) ListBusinesses(ctx context.Context, token string, page, count int) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("count", strconv.Itoa(count))

	body, err := c.get(ctx, token, "/api/v1/business", q)
	if err != nil {
		return Page{}, err
	}

	items := []BusinessSummary{}
	if raw := gjson.GetBytes(body, "data.data"); raw.Exists() && raw.Type != gjson.Null {
		if !raw.IsArray() {
			return Page{}, fmt.Errorf("%w: business page items are not a list", ErrFetchFailed)
		}
		raw.ForEach(func(_, v gjson.Result) bool {
			items = append(items, summaryFromJSON(v))
			return true
		})
	}

	for _, path := range totalPaths {
		if v := gjson.GetBytes(body, path); v.Type == gjson.Number {
			return Page{Items: items, Total: int(v.Int())}, nil
		}
	}

	// Without a total, count what has been seen so far and allow one more
	// page whenever this one came back full.
	total := (page-1)*count + len(items)
	if count > 0 && len(items) >= count {
		total++
	}
	return Page{Items: items, Total: total, Estimated: true}, nil
}

// GetBusiness returns the detail record for id.
func (c *Client) GetBusiness(ctx context.Context, token, id string) (Detail, error) {
	q := url.Values{}
	// The server spells this parameter with a single s.
	q.Set("businesId", id)

	body, err := c.get(ctx, token, "/api/v1/business/detail", q)
	if err != nil {
		return Detail{}, err
	}

	return detailFromJSON(body), nil
}

func (c *Client) get(ctx context.Context, token, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetchFailed, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetchFailed, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFetchFailed, path, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: GET %s: malformed JSON", ErrFetchFailed, path)
	}
	return body, nil
}

func firstString(body []byte, paths []string) string {
	for _, path := range paths {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

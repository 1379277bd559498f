// Package client is a Go consumer of the dashboard API. It keeps the
// session cookie in a jar, so a Login call authenticates every request
// after it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-2xx response decoded from the standard error body.
type APIError struct {
	StatusCode int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// User mirrors the server's public account shape.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ShareCode string    `json:"shareCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction mirrors the server's transaction shape. Amount is decoded
// as a string to keep exact decimal digits.
type Transaction struct {
	ID          int64       `json:"id"`
	Label       string      `json:"label"`
	Type        string      `json:"type"`
	Context     string      `json:"context"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Date        time.Time   `json:"date"`
	IsRecurring bool        `json:"isRecurring"`
	Status      string      `json:"status"`
	UserID      int64       `json:"userId"`
	Tags        []string    `json:"tags"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Category mirrors the server's category shape.
type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Context string `json:"context"`
}

// TransactionInput is the payload for creating or replacing a transaction.
type TransactionInput struct {
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Context     string   `json:"context"`
	Category    string   `json:"category"`
	Amount      string   `json:"amount"`
	Date        string   `json:"date"`
	IsRecurring *bool    `json:"isRecurring,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListOptions narrows a transaction listing.
type ListOptions struct {
	Month     int
	Year      int
	Context   string
	Type      string
	ShareCode string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Month != 0 {
		q.Set("month", strconv.Itoa(o.Month))
	}
	if o.Year != 0 {
		q.Set("year", strconv.Itoa(o.Year))
	}
	if o.Context != "" {
		q.Set("context", o.Context)
	}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.ShareCode != "" {
		q.Set("shareCode", o.ShareCode)
	}
	return q
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL string, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var u User
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var u User
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Me returns the session user, or nil when no valid session exists.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u *User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Client) SharedUser(ctx context.Context, shareCode string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/shared/"+url.PathEscape(shareCode), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListTransactions(ctx context.Context, opts ListOptions) ([]*Transaction, error) {
	var txs []*Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", opts.query(), nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/transactions/%d", id), nil, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", nil, input, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, input TransactionInput) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), nil, input, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var resp struct {
		Success     bool         `json:"success"`
		Transaction *Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (c *Client) ListCategories(ctx context.Context, contextFilter string) ([]*Category, error) {
	q := url.Values{}
	if contextFilter != "" {
		q.Set("context", contextFilter)
	}
	var cats []*Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", q, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			c.logger.Debug("undecodable error body", "status", resp.StatusCode, "error", err)
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

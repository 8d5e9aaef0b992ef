// Package client talks to the /api/news HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Faisalali0159/besofy/internal/domain"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response body becomes a message.
const maxErrorBody = 4096

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("news api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("news api: status %d: %s", e.StatusCode, e.Message)
}

// Message returns the user-facing text for err: the server supplied message
// when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is an HTTP client for the news API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential on admin calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireArticle accepts both "image" and its "imageUrl" alias.
type wireArticle struct {
	domain.Article
	ImageURL *string `json:"imageUrl"`
}

func (w wireArticle) article() domain.Article {
	a := w.Article
	if a.Image == nil {
		a.Image = w.ImageURL
	}
	return a
}

type createRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	ImageURL *string `json:"imageUrl"`
}

type updateRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
	Image     *string `json:"image"`
	Published bool    `json:"published"`
}

// ListArticles fetches every article in the admin shape.
func (c *Client) ListArticles(ctx context.Context) ([]domain.Article, error) {
	var wire []wireArticle
	if err := c.do(ctx, http.MethodGet, "/api/news", true, nil, &wire); err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(wire))
	for _, w := range wire {
		articles = append(articles, w.article())
	}
	return articles, nil
}

// ListSummaries fetches published articles in the public shape. It never
// sends credentials so the public view is returned even for admins.
func (c *Client) ListSummaries(ctx context.Context) ([]domain.ArticleSummary, error) {
	items := []domain.ArticleSummary{}
	if err := c.do(ctx, http.MethodGet, "/api/news", false, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetArticle fetches a single article in the admin shape.
func (c *Client) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	var wire wireArticle
	if err := c.do(ctx, http.MethodGet, "/api/news/"+url.PathEscape(id), true, nil, &wire); err != nil {
		return nil, err
	}
	a := wire.article()
	return &a, nil
}

// CreateArticle creates an article. A nil or empty image is sent as null.
func (c *Client) CreateArticle(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	req := createRequest{
		Title:    in.Title,
		Content:  in.Content,
		Category: string(in.Category),
		ImageURL: nonEmpty(in.Image),
	}

	var wire wireArticle
	if err := c.do(ctx, http.MethodPost, "/api/news", true, req, &wire); err != nil {
		return nil, err
	}
	a := wire.article()
	return &a, nil
}

// UpdateArticle sends the full editable record for id.
func (c *Client) UpdateArticle(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error) {
	req := updateRequest{
		Title:     in.Title,
		Content:   in.Content,
		Category:  string(in.Category),
		Image:     nonEmpty(in.Image),
		Published: in.Published,
	}

	var wire wireArticle
	if err := c.do(ctx, http.MethodPatch, "/api/news/"+url.PathEscape(id), true, req, &wire); err != nil {
		return nil, err
	}
	a := wire.article()
	return &a, nil
}

// DeleteArticle deletes the article with id.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/news/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError prefers the JSON "error" field and falls back to the raw body.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	} else {
		msg = strings.TrimSpace(string(raw))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

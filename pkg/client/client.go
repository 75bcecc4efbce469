package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/naveenspark/postdesk/pkg/domain"
)

// TokenSource supplies the bearer token to attach to outgoing requests.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

// Client is the posts API client.
type Client struct {
	baseURL        string
	tokens         TokenSource
	httpClient     *http.Client
	logger         *slog.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUnauthorizedHandler registers fn to run whenever the API answers 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a new API client.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SetUnauthorizedHandler registers fn to run whenever the API answers 401.
// It replaces any handler given at construction.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a session. When the server omits the user,
// one is synthesized from the email address.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	user := resp.User
	if user == nil {
		user = &domain.User{Email: email}
	}
	return &domain.Session{Token: resp.Token, User: user}, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.Session, error) {
	var resp authResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.post(ctx, "/signup", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Signup: %w", err)
	}
	return &domain.Session{Token: resp.Token, User: resp.User}, nil
}

// GetCurrentUser returns the profile of the token's owner.
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := c.get(ctx, "/profile", &resp); err != nil {
		return nil, fmt.Errorf("client.GetCurrentUser: %w", err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("client.GetCurrentUser: response has no user")
	}
	return resp.User, nil
}

// GoogleAuthURL returns the URL that starts the Google sign-in redirect.
// When redirectURI is set, the API is asked to send the token there instead of
// its default web callback.
func (c *Client) GoogleAuthURL(redirectURI string) string {
	u := c.baseURL + "/auth/google"
	if redirectURI == "" {
		return u
	}
	params := url.Values{}
	params.Set("redirect_uri", redirectURI)
	return u + "?" + params.Encode()
}

// --- Posts ---

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts fetches the full post collection.
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var resp struct {
		Posts []domain.Post `json:"posts"`
	}
	if err := c.get(ctx, "/posts", &resp); err != nil {
		return nil, fmt.Errorf("client.ListPosts: %w", err)
	}
	if resp.Posts == nil {
		return []domain.Post{}, nil
	}
	return resp.Posts, nil
}

// CreatePost creates a new post. The returned post is nil when the server
// does not echo it back.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*domain.Post, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/posts", in, &raw); err != nil {
		return nil, fmt.Errorf("client.CreatePost: %w", err)
	}
	return decodePost(raw), nil
}

// UpdatePost replaces the title and content of a post.
func (c *Client) UpdatePost(ctx context.Context, id int64, in PostInput) error {
	if err := c.doRequest(ctx, http.MethodPut, "/posts/"+strconv.FormatInt(id, 10), in, nil); err != nil {
		return fmt.Errorf("client.UpdatePost: %w", err)
	}
	return nil
}

// DeletePost deletes a post by ID.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/posts/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("client.DeletePost: %w", err)
	}
	return nil
}

// decodePost accepts either {"post": {...}} or a bare post object.
func decodePost(raw json.RawMessage) *domain.Post {
	if len(raw) == 0 {
		return nil
	}
	var env struct {
		Post *domain.Post `json:"post"`
	}
	if json.Unmarshal(raw, &env) == nil && env.Post != nil {
		return env.Post
	}
	var p domain.Post
	if json.Unmarshal(raw, &p) == nil && p.ID != 0 {
		return &p
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		httpErr := readHTTPError(resp)
		c.logger.Warn("api request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return httpErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readHTTPError(resp *http.Response) *HTTPError {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Details []struct {
			Message string `json:"message"`
		} `json:"details"`
	}
	httpErr := &HTTPError{StatusCode: resp.StatusCode}
	if json.Unmarshal(respBody, &apiErr) == nil {
		httpErr.Message = apiErr.Error
		for _, d := range apiErr.Details {
			if d.Message != "" {
				httpErr.Details = append(httpErr.Details, d.Message)
			}
		}
	}
	if httpErr.Message == "" {
		httpErr.Body = strings.TrimSpace(string(respBody))
	}
	return httpErr
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

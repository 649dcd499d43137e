// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the relay messaging backend.
//
// API: Secure logging, size-limited responses, and classified errors.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the relay backend API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all backend requests.
// SECURITY: TLS verification required for production
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: false,
		},
	},
	Timeout: DefaultTimeout,
}

// Client is a client for the relay messaging backend.
//
// All methods follow the same contract: the caller observes either a success
// value or a classified *Error. No method retries failed application-level
// operations automatically; every failure requires explicit user
// re-initiation.
type Client struct {
	// mu guards baseURL and token: the config watcher repoints the base
	// URL and the session store swaps the token while requests are in
	// flight on command goroutines.
	mu         sync.RWMutex
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(perSec float64) Option {
	return func(c *Client) {
		if perSec > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), int(perSec)+1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a backend client for the given base URL. An empty base
// URL yields a client whose every call fails with ErrNotConfigured.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 11),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether a base URL is set.
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL != ""
}

// SetToken installs the bearer credential used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// SetBaseURL points the client at a different backend, used when the
// configuration file changes while the program runs.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	c.mu.Unlock()
}

// =============================================================================
// AUTH
// =============================================================================

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns an authenticated session.
func (c *Client) Register(ctx context.Context, username, email, password, fullName string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, OpRegister, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// DIRECTORY
// =============================================================================

// SearchUsers queries the directory. The query is sent verbatim; relevance
// ranking is the backend's responsibility.
func (c *Client) SearchUsers(ctx context.Context, query, currentUserID string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("current_user_id", currentUserID)

	var out searchResponse
	err := c.do(ctx, OpSearch, http.MethodGet, "/users/search?"+params.Encode(), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Users, nil
}

// AddContact records a contact relationship between two users.
func (c *Client) AddContact(ctx context.Context, userID, contactUserID string) error {
	var out ackResponse
	err := c.do(ctx, OpAddContact, http.MethodPost, "/contacts/add", addContactRequest{
		UserID:        userID,
		ContactUserID: contactUserID,
	}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return &Error{Op: OpAddContact, Message: out.Message}
	}
	return nil
}

// =============================================================================
// CHATS & MESSAGES
// =============================================================================

// ListChats fetches the user's conversation summaries.
func (c *Client) ListChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	params := url.Values{}
	params.Set("user_id", userID)

	var out chatsResponse
	err := c.do(ctx, OpListChats, http.MethodGet, "/chats?"+params.Encode(), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Chats, nil
}

// ListMessages fetches the message history for one conversation, ordered by
// server-assigned sequence.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]WireMessage, error) {
	var out messagesResponse
	err := c.do(ctx, OpListMessages, http.MethodGet, "/chats/"+url.PathEscape(chatID)+"/messages", nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendMessage delivers a composed message to the backend.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	var out ackResponse
	return c.do(ctx, OpSendMessage, http.MethodPost, "/chats/"+url.PathEscape(chatID)+"/messages", sendMessageRequest{
		Text: text,
	}, &out)
}

// CreateChat opens a conversation with a contact.
func (c *Client) CreateChat(ctx context.Context, userID, contactUserID string) (*ChatSummary, error) {
	var out chatResponse
	err := c.do(ctx, OpCreateChat, http.MethodPost, "/chats", createChatRequest{
		UserID:        userID,
		ContactUserID: contactUserID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Chat, nil
}

// UpdateProfile updates the authenticated user's display name and avatar.
func (c *Client) UpdateProfile(ctx context.Context, fullName, avatarURL string) (*Identity, error) {
	var out profileResponse
	err := c.do(ctx, OpUpdateProfile, http.MethodPut, "/users/profile", updateProfileRequest{
		FullName:  fullName,
		AvatarURL: avatarURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one request/response cycle with classified error mapping.
// The base URL and token are snapshotted once so a concurrent SetBaseURL or
// SetToken cannot tear an in-flight request.
func (c *Client) do(ctx context.Context, op Op, method, path string, reqBody, out interface{}) error {
	c.mu.RLock()
	baseURL, token := c.baseURL, c.token
	c.mu.RUnlock()

	if baseURL == "" {
		return fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Op: op, Message: "request canceled"}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return &Error{Op: op, Message: "failed to encode request"}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Message: "failed to create request"}
	}
	setHeaders(req, token)

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear Authorization header immediately after request to prevent logging
	req.Header.Del("Authorization")

	if err != nil {
		return &Error{Op: op, Message: ""}
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	respBody, err := readResponse(resp)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Message: ""}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classifyError(op, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Message: ""}
		}
	}
	return nil
}

// setHeaders sets the required headers for backend requests.
func setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "relay/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// classifyError converts a non-2xx response into a classified *Error,
// carrying the backend's reported message when the envelope parses.
func (c *Client) classifyError(op Op, status int, body []byte) error {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &Error{Op: op, Status: status, Message: envelope.Error}
	}
	return &Error{Op: op, Status: status, Message: ""}
}

// readResponse reads the response body with size limits.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// logRequest logs an API request without exposing sensitive data.
// SECURITY: Does not log headers (may contain auth) or body (may contain credentials).
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration.
// SECURITY: Only logs status code and duration, no response body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d (%v)", resp.StatusCode, duration)
}

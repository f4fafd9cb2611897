// Package api is the REST adapter of the account gateway.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

// Backend endpoints, relative to the base URL.
const (
	PathPasswordCheck = "/users/password-check"
	PathEmailCheck    = "/users/email-check"
	PathRegister      = "/users/register"
	PathMe            = "/users/me"
	PathHealth        = "/health"
)

const maxResponseBytes = 1 << 20

// envelope is the body shape of every backend answer.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type passwordCheckRequest struct {
	Password string `json:"password"`
}

type registerData struct {
	UserID string `json:"userId"`
}

// Client talks to the account backend over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var (
	_ ports.AccountGateway = (*Client)(nil)
	_ ports.HealthChecker  = (*Client)(nil)
)

// NewClient creates a client for baseURL. timeout bounds every call on top of
// the request context.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "account_api"),
	}
}

// CheckPassword posts the password for the session's user.
func (c *Client) CheckPassword(ctx context.Context, session domain.Session, password string) domain.Result[domain.Empty] {
	env, failure := c.do(ctx, http.MethodPost, PathPasswordCheck, session.Token, passwordCheckRequest{Password: password})
	if failure != nil {
		return domain.Failed[domain.Empty](*failure)
	}
	if env.Status == domain.StatusFail {
		return domain.Fail[domain.Empty](domain.FailureRejected, env.Message)
	}
	return domain.Ok(domain.Empty{})
}

// CheckEmail asks whether email is still free. A "fail" answer means it is taken.
func (c *Client) CheckEmail(ctx context.Context, email string) domain.Result[domain.Empty] {
	path := PathEmailCheck + "?" + url.Values{"email": {email}}.Encode()
	env, failure := c.do(ctx, http.MethodGet, path, "", nil)
	if failure != nil {
		return domain.Failed[domain.Empty](*failure)
	}
	if env.Status == domain.StatusFail {
		return domain.Fail[domain.Empty](domain.FailureRejected, env.Message)
	}
	return domain.Ok(domain.Empty{})
}

// Register posts the registration payload. Any 2xx answer is returned as a
// receipt; the caller decides what a non-success status means.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) domain.Result[domain.RegisterReceipt] {
	env, failure := c.do(ctx, http.MethodPost, PathRegister, "", req)
	if failure != nil {
		return domain.Failed[domain.RegisterReceipt](*failure)
	}

	receipt := domain.RegisterReceipt{Status: env.Status, Message: env.Message}
	var data registerData
	if len(env.Data) > 0 && json.Unmarshal(env.Data, &data) == nil {
		receipt.UserID = data.UserID
	}
	return domain.Ok(receipt)
}

// FetchProfile loads the session's user.
func (c *Client) FetchProfile(ctx context.Context, session domain.Session) domain.Result[domain.UserProfileView] {
	env, failure := c.do(ctx, http.MethodGet, PathMe, session.Token, nil)
	if failure != nil {
		return domain.Failed[domain.UserProfileView](*failure)
	}
	if env.Status == domain.StatusFail {
		return domain.Fail[domain.UserProfileView](domain.FailureRejected, env.Message)
	}

	var profile domain.UserProfileView
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return domain.Fail[domain.UserProfileView](domain.FailureUnexpected, "profile missing from response")
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return domain.Fail[domain.UserProfileView](domain.FailureUnexpected, "decode profile: "+err.Error())
	}
	return domain.Ok(profile)
}

// Ping checks the backend health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathHealth, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("account backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("account backend returned status %d", resp.StatusCode)
	}
	return nil
}

// do performs one call and classifies everything that is not a decodable
// answer. 401 and 403 are unauthorized; other non-2xx answers are rejected
// when they carry a "fail" envelope and unexpected otherwise.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, *domain.Failure) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.Failure{Kind: domain.FailureUnexpected, Message: "marshal request: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &domain.Failure{Kind: domain.FailureUnexpected, Message: "create request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "account backend request failed",
			"method", method,
			"path", endpoint(path),
			"error", err,
		)
		return nil, &domain.Failure{Kind: domain.FailureTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "account backend request",
		"method", method,
		"path", endpoint(path),
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.Failure{Kind: domain.FailureTransport, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.Failure{Kind: domain.FailureUnauthorized, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && env.Status == domain.StatusFail {
			return nil, &domain.Failure{Kind: domain.FailureRejected, Message: env.Message}
		}
		return nil, &domain.Failure{Kind: domain.FailureUnexpected, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	if decodeErr != nil {
		return nil, &domain.Failure{Kind: domain.FailureUnexpected, Message: "decode response: " + decodeErr.Error()}
	}
	return &env, nil
}

// endpoint strips the query so logs never carry an email address.
func endpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

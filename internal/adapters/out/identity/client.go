// Package identity resolves bearer tokens into authenticated actors by
// calling the identity service that owns user accounts and roles.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrTokenRejected is returned when the identity service recognizes the
// request but refuses the token. Not retried.
var ErrTokenRejected = errors.New("identity service rejected the token")

// RetryConfig bounds the retry behavior for transient identity failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig is used when the composition root passes a zero config.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    time.Second,
}

// Client calls the identity service over HTTP with bounded retries.
// Transient failures (5xx, network errors) are retried with exponential
// backoff; an exhausted budget surfaces as UnavailableError so HTTP answers
// 503 rather than 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	cfg        RetryConfig
}

// NewClient creates an identity client for the service at baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger, cfg RetryConfig) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if cfg.MaxAttempts < 1 {
		cfg = DefaultRetryConfig
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		cfg:        cfg,
	}
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Resolve verifies the bearer token and returns the actor it belongs to.
func (c *Client) Resolve(ctx context.Context, token string) (kernel.Actor, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		actor, retryable, err := c.verify(ctx, token)
		if err == nil {
			return actor, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable || attempt == c.cfg.MaxAttempts {
			break
		}

		delay := backoff(c.cfg.BaseDelay, c.cfg.MaxDelay, attempt)
		c.logger.WarnContext(ctx, "identity verify retry",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}

	if errors.Is(lastErr, ErrTokenRejected) {
		return kernel.Actor{}, lastErr
	}
	return kernel.Actor{}, errs.NewUnavailableErrorWithCause("verify token", lastErr)
}

// verify performs one request. The second return value reports whether the
// failure is worth retrying.
func (c *Client) verify(ctx context.Context, token string) (kernel.Actor, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/verify", nil)
	if err != nil {
		return kernel.Actor{}, false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Actor{}, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return kernel.Actor{}, false, ErrTokenRejected
	case resp.StatusCode >= http.StatusInternalServerError:
		return kernel.Actor{}, true, fmt.Errorf("identity service answered %d", resp.StatusCode)
	default:
		return kernel.Actor{}, false, fmt.Errorf("identity service answered %d", resp.StatusCode)
	}

	var body verifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.Actor{}, false, err
	}

	userID, err := kernel.UUIDFromString(body.UserID)
	if err != nil {
		return kernel.Actor{}, false, err
	}
	role, err := kernel.RoleFromString(body.Role)
	if err != nil {
		return kernel.Actor{}, false, err
	}

	actor, err := kernel.NewActor(userID, role)
	if err != nil {
		return kernel.Actor{}, false, err
	}
	return actor, false, nil
}

func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > maxDelay {
		return maxDelay
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package identity_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastRetries() identity.RetryConfig {
	return identity.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestClient_Resolve_Success(t *testing.T) {
	userID := kernel.NewUUID()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/verify", r.URL.Path)
		assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id": userID.String(),
			"role":    "deliveryperson",
		})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, nil, discardLogger(), fastRetries())
	actor, err := client.Resolve(t.Context(), "valid-token")

	require.NoError(t, err)
	assert.True(t, actor.ID().IsEqual(userID))
	assert.Equal(t, kernel.RoleCourier, actor.Role())
}

func TestClient_Resolve_RejectedTokenNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, nil, discardLogger(), fastRetries())
	_, err := client.Resolve(t.Context(), "bad-token")

	require.ErrorIs(t, err, identity.ErrTokenRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Resolve_RetriesServerErrors(t *testing.T) {
	userID := kernel.NewUUID()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id": userID.String(),
			"role":    "admin",
		})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, nil, discardLogger(), fastRetries())
	actor, err := client.Resolve(t.Context(), "token")

	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Resolve_ExhaustedBudgetIsUnavailable(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, nil, discardLogger(), fastRetries())
	_, err := client.Resolve(t.Context(), "token")

	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Resolve_UnknownRoleRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id": kernel.NewUUID().String(),
			"role":    "superuser",
		})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, nil, discardLogger(), fastRetries())
	_, err := client.Resolve(t.Context(), "token")

	require.Error(t, err)
}

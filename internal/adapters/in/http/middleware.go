package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// actorContextKey stores the authenticated actor on the echo context.
const actorContextKey = "fulfillment.actor"

// NewAuthMiddleware resolves the bearer token into an actor and stores it on
// the request context. Requests without a token, or with a rejected one,
// never reach the handler.
func NewAuthMiddleware(identityClient ports.IdentityClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request())
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    "unauthorized",
					Message: "missing bearer token",
				})
			}

			actor, err := identityClient.Resolve(ctx.Request().Context(), token)
			if err != nil {
				return respondError(ctx, err)
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// NewTimeoutMiddleware bounds each request with a deadline so a slow store
// surfaces as 503 instead of hanging the client.
func NewTimeoutMiddleware(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), timeout)
			defer cancel()

			ctx.SetRequest(ctx.Request().WithContext(reqCtx))
			return next(ctx)
		}
	}
}

// NewRequestLogMiddleware writes one structured record per request, with
// actor attribution when authentication already ran.
func NewRequestLogMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			attrs := []any{
				slog.String("method", ctx.Request().Method),
				slog.String("path", ctx.Request().URL.Path),
				slog.Int("status", ctx.Response().Status),
				slog.Duration("duration", time.Since(start)),
			}
			if actor, ok := actorFromContext(ctx); ok {
				attrs = append(attrs,
					slog.String("actor_id", actor.ID().String()),
					slog.String("actor_role", string(actor.Role())),
				)
			}
			logger.InfoContext(ctx.Request().Context(), "http request", attrs...)

			return err
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	header := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func actorFromContext(ctx echo.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}

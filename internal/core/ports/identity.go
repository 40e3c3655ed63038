package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// IdentityClient resolves a bearer token into an authenticated actor by
// calling the identity service. Implementations retry transient failures;
// an exhausted retry budget surfaces as UnavailableError.
type IdentityClient interface {
	Resolve(ctx context.Context, token string) (kernel.Actor, error)
}

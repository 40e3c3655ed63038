package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CompleteDeliveredOrdersCommand must be created via NewCompleteDeliveredOrdersCommand constructor",
)

// CompleteDeliveredOrdersCommand represents the batch promotion of delivered
// orders to "completed" once a grace period has passed. The completion job
// issues it on a schedule; an admin can trigger the same move per order
// through the status endpoint.
type CompleteDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	gracePeriod time.Duration

	guard guard.ConstructorGuard
}

// NewCompleteDeliveredOrdersCommand creates a command to complete delivered
// orders older than the grace period.
func NewCompleteDeliveredOrdersCommand(gracePeriod time.Duration) (CompleteDeliveredOrdersCommand, error) {
	if gracePeriod <= 0 {
		return CompleteDeliveredOrdersCommand{}, errs.NewValueIsInvalidError("gracePeriod")
	}

	return CompleteDeliveredOrdersCommand{
		gracePeriod: gracePeriod,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveredOrdersCommandIsNotConstructed)
}

// GracePeriod returns how long an order stays in "delivered" before the batch
// promotes it.
func (c CompleteDeliveredOrdersCommand) GracePeriod() time.Duration {
	return c.gracePeriod
}

package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgeDeliveredOrdersCommandIsNotConstructed = errors.New(
	"PurgeDeliveredOrdersCommand must be created via NewPurgeDeliveredOrdersCommand constructor",
)

// PurgeDeliveredOrdersCommand represents a bulk removal of delivered orders.
// The operation is destructive and requires an explicit confirmation flag on
// top of the admin role. Ratings and the assignment log survive the purge.
type PurgeDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	dateFrom  time.Time
	dateTo    time.Time
	olderThan time.Duration
	confirmed bool

	guard guard.ConstructorGuard
}

// NewPurgeDeliveredOrdersCommand creates a command to purge delivered orders.
// All filter fields are optional; a zero filter matches every delivered order,
// which is exactly why the confirmation flag exists.
func NewPurgeDeliveredOrdersCommand(
	actor kernel.Actor,
	dateFrom, dateTo time.Time,
	olderThan time.Duration,
	confirmed bool,
) (PurgeDeliveredOrdersCommand, error) {
	if err := actor.Validate(); err != nil {
		return PurgeDeliveredOrdersCommand{}, err
	}

	return PurgeDeliveredOrdersCommand{
		actor:     actor,
		dateFrom:  dateFrom,
		dateTo:    dateTo,
		olderThan: olderThan,
		confirmed: confirmed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeDeliveredOrdersCommandIsNotConstructed)
}

// Actor returns the authenticated actor requesting the purge.
func (c PurgeDeliveredOrdersCommand) Actor() kernel.Actor {
	return c.actor
}

// DateFrom returns the inclusive lower bound on delivery time, or zero.
func (c PurgeDeliveredOrdersCommand) DateFrom() time.Time {
	return c.dateFrom
}

// DateTo returns the inclusive upper bound on delivery time, or zero.
func (c PurgeDeliveredOrdersCommand) DateTo() time.Time {
	return c.dateTo
}

// OlderThan returns the retention cutoff duration, or zero.
func (c PurgeDeliveredOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

// Confirmed reports whether the caller explicitly confirmed the purge.
func (c PurgeDeliveredOrdersCommand) Confirmed() bool {
	return c.confirmed
}

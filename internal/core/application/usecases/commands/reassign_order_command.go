package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand represents a request to swap the courier on an order
// that is already assigned or out for delivery. Only the courier reference
// changes; status, assignment time, and delivery details stay as they are.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	newCourierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a command to hand an order to another courier.
func NewReassignOrderCommand(orderID, newCourierID kernel.UUID) (ReassignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReassignOrderCommand{}, err
	}
	if err := newCourierID.Validate(); err != nil {
		return ReassignOrderCommand{}, err
	}

	return ReassignOrderCommand{
		orderID:      orderID,
		newCourierID: newCourierID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to reassign.
func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewCourierID returns the identifier of the replacement courier.
func (c ReassignOrderCommand) NewCourierID() kernel.UUID {
	return c.newCourierID
}

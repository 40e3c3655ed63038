package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to bind a specific courier to a
// confirmed order. Assignment is the only path into "assigned" status; a
// direct status change to it is rejected by the aggregate.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAssignOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign a courier to an order.
func NewAssignOrderCommand(orderID, courierID kernel.UUID) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}
	if err := courierID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the courier to bind.
func (c AssignOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

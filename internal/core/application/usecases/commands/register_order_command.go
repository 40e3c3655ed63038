package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterOrderCommandIsNotConstructed = errors.New(
	"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
)

// RegisterOrderCommand represents a request to register a paid order with
// fulfillment. The order enters the lifecycle in "pending" status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewRegisterOrderCommand(orderID, "ORD-2024-1007", total)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewRegisterOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register order: %w", err)
//	}
type RegisterOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	orderNumber string
	totalAmount kernel.Money

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand creates a command to register a new order.
// Validates that the order ID is valid and the human-readable number is not empty.
func NewRegisterOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	totalAmount kernel.Money,
) (RegisterOrderCommand, error) {
	cmd := RegisterOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
	); err != nil {
		return RegisterOrderCommand{}, err
	}
	cmd.totalAmount = totalAmount

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c RegisterOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-readable order number.
func (c RegisterOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// TotalAmount returns the order total.
func (c RegisterOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

func (c *RegisterOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RegisterOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}

	c.orderNumber = orderNumber
	return nil
}

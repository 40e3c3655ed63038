package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status on behalf of an authenticated actor. A courier starting a
// delivery run may carry an estimated delivery time and notes in the same
// request; they are applied before the transition.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, actor, order.StatusOutForDelivery, &eta, nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrIllegalTransition):
//	    // the lifecycle does not allow this move
//	case errors.Is(err, errs.ErrForbidden):
//	    // the actor's role may not make this move
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	actor                 kernel.Actor
	target                order.Status
	estimatedDeliveryTime *time.Time
	deliveryNotes         *string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order.
// The target status must be a known one; whether the move is allowed from the
// current status, and for this actor, is decided by the aggregate.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	target order.Status,
	estimatedDeliveryTime *time.Time,
	deliveryNotes *string,
) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := actor.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:               orderID,
		actor:                 actor,
		target:                target,
		estimatedDeliveryTime: estimatedDeliveryTime,
		deliveryNotes:         deliveryNotes,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the authenticated actor requesting the transition.
func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// EstimatedDeliveryTime returns the optional ETA carried with the transition.
func (c ChangeOrderStatusCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

// DeliveryNotes returns the optional notes carried with the transition.
func (c ChangeOrderStatusCommand) DeliveryNotes() *string {
	return c.deliveryNotes
}

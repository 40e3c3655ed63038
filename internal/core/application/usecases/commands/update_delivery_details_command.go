package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryDetailsCommandIsNotConstructed = errors.New(
	"UpdateDeliveryDetailsCommand must be created via NewUpdateDeliveryDetailsCommand constructor",
)

// UpdateDeliveryDetailsCommand represents a request to set the estimated
// delivery time or delivery notes on an order without changing its status.
// The window for this is "assigned" and "out_for_delivery" only.
type UpdateDeliveryDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	actor                 kernel.Actor
	estimatedDeliveryTime *time.Time
	deliveryNotes         *string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryDetailsCommand creates a command to update delivery details.
// At least one of the two fields must be present.
func NewUpdateDeliveryDetailsCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	estimatedDeliveryTime *time.Time,
	deliveryNotes *string,
) (UpdateDeliveryDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateDeliveryDetailsCommand{}, err
	}
	if err := actor.Validate(); err != nil {
		return UpdateDeliveryDetailsCommand{}, err
	}
	if estimatedDeliveryTime == nil && deliveryNotes == nil {
		return UpdateDeliveryDetailsCommand{}, errs.NewValueIsRequiredError("estimatedDeliveryTime or deliveryNotes")
	}

	return UpdateDeliveryDetailsCommand{
		orderID:               orderID,
		actor:                 actor,
		estimatedDeliveryTime: estimatedDeliveryTime,
		deliveryNotes:         deliveryNotes,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryDetailsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateDeliveryDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the authenticated actor requesting the update.
func (c UpdateDeliveryDetailsCommand) Actor() kernel.Actor {
	return c.actor
}

// EstimatedDeliveryTime returns the new ETA, or nil to leave it unchanged.
func (c UpdateDeliveryDetailsCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

// DeliveryNotes returns the new notes, or nil to leave them unchanged.
func (c UpdateDeliveryDetailsCommand) DeliveryNotes() *string {
	return c.deliveryNotes
}

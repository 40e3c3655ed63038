package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies status transitions under the
// per-order row lock. Re-reading the order under the lock is what makes a
// concurrent pair of conflicting requests resolve to exactly one winner.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle locks the order, applies delivery details when the request carries
// them, performs the transition, and persists the result atomically.
// Returns the updated order for the caller to render.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	aggregate, err := ordersRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if command.EstimatedDeliveryTime() != nil || command.DeliveryNotes() != nil {
		err = aggregate.UpdateDeliveryDetails(command.Actor(), command.EstimatedDeliveryTime(), command.DeliveryNotes())
		if err != nil {
			return nil, err
		}
	}

	from := aggregate.Status()
	if err = aggregate.TransitionBy(command.Actor(), command.Target(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.OrderStatusChanged(ctx, aggregate, from)
	return aggregate, nil
}

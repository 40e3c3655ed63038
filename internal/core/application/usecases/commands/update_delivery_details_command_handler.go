package commands

import (
	"context"
)

// UpdateDeliveryDetailsCommandHandler applies delivery detail changes under
// the per-order row lock.
type UpdateDeliveryDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateDeliveryDetailsCommandHandler creates a handler for detail updates.
func NewUpdateDeliveryDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateDeliveryDetailsCommandHandler {
	return UpdateDeliveryDetailsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle locks the order, applies the detail changes, and persists them.
// The aggregate enforces the status window and courier ownership.
func (h UpdateDeliveryDetailsCommandHandler) Handle(ctx context.Context, command UpdateDeliveryDetailsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	aggregate, err := ordersRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	err = aggregate.UpdateDeliveryDetails(command.Actor(), command.EstimatedDeliveryTime(), command.DeliveryNotes())
	if err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// RegisterOrderCommandHandler persists newly paid orders so the fulfillment
// lifecycle can begin. The order enters in "pending" status with no courier.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRegisterOrderCommandHandler creates a handler for order registration.
func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order aggregate and stores it within a transaction.
func (h RegisterOrderCommandHandler) Handle(ctx context.Context, command RegisterOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(command.OrderID(), command.OrderNumber(), command.TotalAmount())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

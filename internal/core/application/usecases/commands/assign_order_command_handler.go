package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AssignOrderCommandHandler orchestrates binding a courier to a confirmed order.
// The order row is locked for the duration of the transaction, so concurrent
// assignment attempts for the same order serialize and the loser observes the
// state the winner left behind.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	assignment services.AssignmentService
	notifier   ports.Notifier
}

// NewAssignOrderCommandHandler creates a handler for courier assignment.
func NewAssignOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		assignment: services.NewAssignmentService(),
		notifier:   notifier,
	}
}

// Handle verifies the courier is active, binds it to the order, and appends
// the pairing to the assignment log. The log is what courier statistics count,
// so it is written in the same transaction as the assignment itself.
// Returns the updated order for the caller to render.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) (*order.Order, error) {
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

	assignee, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	ordersRepo := uow.OrderRepository()
	aggregate, err := ordersRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	record, err := h.assignment.Assign(aggregate, assignee, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = ordersRepo.LogAssignment(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.OrderAssigned(ctx, aggregate)
	return aggregate, nil
}

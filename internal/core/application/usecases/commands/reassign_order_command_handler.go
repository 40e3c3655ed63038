package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ReassignOrderCommandHandler swaps the courier on an in-flight order.
// The replacement must be active; the previous courier keeps the assignment
// log entry, which is why reassignment counts for both couriers' statistics.
type ReassignOrderCommandHandler struct {
	uowFactory UoWFactory
	assignment services.AssignmentService
	notifier   ports.Notifier
}

// NewReassignOrderCommandHandler creates a handler for courier reassignment.
func NewReassignOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
		assignment: services.NewAssignmentService(),
		notifier:   notifier,
	}
}

// Handle verifies the replacement courier is active and swaps the reference
// on the locked order row, leaving status and delivery details untouched.
// Returns the updated order for the caller to render.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, command ReassignOrderCommand) (*order.Order, error) {
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

	replacement, err := uow.CourierRepository().Get(ctx, command.NewCourierID())
	if err != nil {
		return nil, err
	}

	ordersRepo := uow.OrderRepository()
	aggregate, err := ordersRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	record, err := h.assignment.Reassign(aggregate, replacement, time.Now().UTC())
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

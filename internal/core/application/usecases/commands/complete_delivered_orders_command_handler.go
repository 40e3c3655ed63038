package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CompleteDeliveredOrdersCommandHandler promotes stale delivered orders to
// "completed" on behalf of a system admin actor. Each order goes through the
// same transition rules as a manual status change would.
type CompleteDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteDeliveredOrdersCommandHandler creates a handler for batch completion.
func NewCompleteDeliveredOrdersCommandHandler(uowFactory OrderUoWFactory) CompleteDeliveredOrdersCommandHandler {
	return CompleteDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle finds delivered orders past the grace period and transitions each to
// "completed" in one transaction. Returns how many orders were promoted.
func (h CompleteDeliveredOrdersCommandHandler) Handle(
	ctx context.Context,
	command CompleteDeliveredOrdersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	system, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	ordersRepo := uow.OrderRepository()

	stale, err := ordersRepo.GetDeliveredBefore(ctx, now.Add(-command.GracePeriod()))
	if err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		if err = aggregate.TransitionBy(system, order.Completed, now); err != nil {
			return 0, err
		}
		if err = ordersRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}

package commands

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// PurgeDeliveredOrdersCommandHandler removes finished orders in bulk.
// Only delivered and completed orders are eligible; every other status is
// untouched no matter what the filter says.
type PurgeDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPurgeDeliveredOrdersCommandHandler creates a handler for the purge operation.
func NewPurgeDeliveredOrdersCommandHandler(uowFactory OrderUoWFactory) PurgeDeliveredOrdersCommandHandler {
	return PurgeDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the admin role and the confirmation flag, then deletes the
// matching delivered orders and reports how many rows went.
func (h PurgeDeliveredOrdersCommandHandler) Handle(
	ctx context.Context,
	command PurgeDeliveredOrdersCommand,
) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	if !command.Actor().IsAdmin() {
		return 0, errs.NewForbiddenError(string(command.Actor().Role()), "purge delivered orders")
	}
	if !command.Confirmed() {
		return 0, errs.NewConfirmationRequiredError("purge delivered orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.OrderRepository().DeleteDelivered(ctx, ports.DeliveredFilter{
		DateFrom:  command.DateFrom(),
		DateTo:    command.DateTo(),
		OlderThan: command.OlderThan(),
	})
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}

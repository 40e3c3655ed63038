package commands

import (
	"context"
)

// SetCourierActivityCommandHandler flips a courier's assignment eligibility.
type SetCourierActivityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierActivityCommandHandler creates a handler for activity changes.
func NewSetCourierActivityCommandHandler(uowFactory CourierUoWFactory) SetCourierActivityCommandHandler {
	return SetCourierActivityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, applies the flag, and persists the change.
func (h SetCourierActivityCommandHandler) Handle(ctx context.Context, command SetCourierActivityCommand) error {
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

	courierRepo := uow.CourierRepository()
	aggregate, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if command.Active() {
		aggregate.Activate()
	} else {
		aggregate.Deactivate()
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

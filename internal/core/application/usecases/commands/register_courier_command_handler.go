package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
)

// RegisterCourierCommandHandler persists newly promoted couriers.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewRegisterCourierCommandHandler creates a handler for courier registration.
func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the courier aggregate and stores it within a transaction.
func (h RegisterCourierCommandHandler) Handle(ctx context.Context, command RegisterCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newCourier, err := courier.NewCourier(command.CourierID(), command.Name(), command.Email(), command.Phone())
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

	if err = uow.CourierRepository().Add(ctx, newCourier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

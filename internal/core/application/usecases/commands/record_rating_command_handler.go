package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/pkg/errs"
)

// RecordRatingCommandHandler records a customer's rating for an order.
// The order must be delivered or completed, and may carry only one rating for
// its entire life. The rating references the courier directly, so it keeps
// contributing to the courier's average after the order itself is purged.
type RecordRatingCommandHandler struct {
	uowFactory OrderRatingUoWFactory
}

// NewRecordRatingCommandHandler creates a handler for rating recording.
func NewRecordRatingCommandHandler(uowFactory OrderRatingUoWFactory) RecordRatingCommandHandler {
	return RecordRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies the order is in a rateable state, rejects duplicates, and
// stores the rating. A unique index on the order reference backs the
// duplicate check for racing requests.
func (h RecordRatingCommandHandler) Handle(ctx context.Context, command RecordRatingCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.Status().AllowsRating() {
		return errs.NewInvalidStateError("rate order", aggregate.Status().String())
	}

	ratingsRepo := uow.RatingRepository()
	exists, err := ratingsRepo.ExistsForOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewDuplicateRatingError(aggregate.ID().String())
	}

	newRating, err := rating.NewRating(
		aggregate.ID(),
		*aggregate.CourierID(),
		command.Stars(),
		command.Feedback(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = ratingsRepo.Add(ctx, newRating); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordRatingCommandIsNotConstructed = errors.New(
	"RecordRatingCommand must be created via NewRecordRatingCommand constructor",
)

// RecordRatingCommand represents a customer rating a delivered order.
// Stars are bounded to [1, 5]; feedback text is optional.
type RecordRatingCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	stars    int
	feedback string

	guard guard.ConstructorGuard
}

// NewRecordRatingCommand creates a command to record a rating for an order.
func NewRecordRatingCommand(orderID kernel.UUID, stars int, feedback string) (RecordRatingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordRatingCommand{}, err
	}
	if stars < rating.MinStars || stars > rating.MaxStars {
		return RecordRatingCommand{}, errs.NewValueIsOutOfRangeError("stars", stars, rating.MinStars, rating.MaxStars)
	}

	return RecordRatingCommand{
		orderID:  orderID,
		stars:    stars,
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordRatingCommand) Validate() error {
	return c.guard.Validate(ErrRecordRatingCommandIsNotConstructed)
}

// OrderID returns the identifier of the rated order.
func (c RecordRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stars returns the star value within [1, 5].
func (c RecordRatingCommand) Stars() int {
	return c.stars
}

// Feedback returns the optional feedback text.
func (c RecordRatingCommand) Feedback() string {
	return c.feedback
}

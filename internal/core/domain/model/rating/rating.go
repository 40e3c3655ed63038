// Package rating implements the customer rating left for a delivered order.
//
// A rating is immutable once recorded and references both the order it was
// left for and the courier who carried it, so courier averages survive order
// purges. At most one rating per order; the uniqueness is enforced by the
// store, the entity only validates its own fields.
package rating

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Stars bounds for a rating.
const (
	MinStars = 1
	MaxStars = 5
)

// Domain errors for rating operations.
var (
	// ErrRatedAtIsRequired is returned when the rating timestamp is zero.
	ErrRatedAtIsRequired = errs.NewValueIsRequiredError("ratedAt")
	// ErrRatingIsNotConstructed is returned when using an improperly initialized Rating.
	ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating")
)

// Rating is a customer's verdict on a single delivered order.
type Rating struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	stars     int
	feedback  string
	ratedAt   time.Time
	guard     guard.ConstructorGuard
}

// NewRating creates a rating for an order carried by the given courier.
// Feedback text is optional, stars must be within [1, 5].
func NewRating(orderID, courierID kernel.UUID, stars int, feedback string, ratedAt time.Time) (*Rating, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if stars < MinStars || stars > MaxStars {
		return nil, errs.NewValueIsOutOfRangeError("stars", stars, MinStars, MaxStars)
	}
	if ratedAt.IsZero() {
		return nil, ErrRatedAtIsRequired
	}

	return &Rating{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		courierID: courierID,
		stars:     stars,
		feedback:  feedback,
		ratedAt:   ratedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreRating reconstructs a rating from persistence with its original identifier.
func RestoreRating(id, orderID, courierID kernel.UUID, stars int, feedback string, ratedAt time.Time) (*Rating, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	r, err := NewRating(orderID, courierID, stars, feedback, ratedAt)
	if err != nil {
		return nil, err
	}
	r.id = id
	return r, nil
}

// Validate ensures the Rating instance was properly constructed.
func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID {
	return r.id
}

// OrderID returns the identifier of the rated order.
func (r *Rating) OrderID() kernel.UUID {
	return r.orderID
}

// CourierID returns the identifier of the courier who carried the order.
func (r *Rating) CourierID() kernel.UUID {
	return r.courierID
}

// Stars returns the star value, within [1, 5].
func (r *Rating) Stars() int {
	return r.stars
}

// Feedback returns the optional feedback text.
func (r *Rating) Feedback() string {
	return r.feedback
}

// RatedAt returns when the rating was recorded.
func (r *Rating) RatedAt() time.Time {
	return r.ratedAt
}

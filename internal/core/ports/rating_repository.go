package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"
)

// RatingRepository defines the persistence contract for order ratings.
// Ratings are write-once; there is no Update.
type RatingRepository interface {
	// Add persists a new rating. Returns DuplicateRatingError when the
	// order already has one.
	Add(ctx context.Context, aggregate *rating.Rating) error

	// ExistsForOrder reports whether the order has been rated already.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}

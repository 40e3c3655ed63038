// Package ratingrepo provides data transfer objects and mapping functions
// for rating persistence. Ratings reference the courier directly and are
// deliberately not foreign-keyed to orders, so they outlive order purges.
package ratingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// RatingDTO represents the database structure for persisting ratings.
// The unique index on OrderID is the hard backstop of the one-rating-per-order
// rule for racing requests.
type RatingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ratings_order_id"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`
	Stars     int       `gorm:"not null"`
	Feedback  string
	RatedAt   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the database table name for rating entities.
func (RatingDTO) TableName() string {
	return "ratings"
}

// fromDomain converts a rating domain entity to its database representation.
func fromDomain(aggregate *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),
		Stars:     aggregate.Stars(),
		Feedback:  aggregate.Feedback(),
		RatedAt:   aggregate.RatedAt(),
	}
}

// toDomain converts a database DTO to a rating domain entity.
func toDomain(dto RatingDTO) (*rating.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return rating.RestoreRating(id, orderID, courierID, dto.Stars, dto.Feedback, dto.RatedAt)
}

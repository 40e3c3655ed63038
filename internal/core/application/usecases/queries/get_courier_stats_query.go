package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCourierStatsQueryIsNotConstructed = errors.New(
	"GetCourierStatsQuery must be created via NewGetCourierStatsQuery constructor",
)

// GetCourierStatsQuery retrieves one courier's performance and rating
// figures. Everything is derived at read time; nothing here is stored
// denormalized.
//
// Example:
//
//	query, err := NewGetCourierStatsQuery(courierID)
//	if err != nil {
//	    return err
//	}
//
//	stats, err := NewGetCourierStatsQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d assigned, %d delivered, %.1f avg stars\n",
//	    stats.TotalAssigned, stats.TotalDelivered, stats.AverageRating)
type GetCourierStatsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierStatsQuery creates a query for a courier's statistics.
func NewGetCourierStatsQuery(courierID kernel.UUID) (GetCourierStatsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}

	return GetCourierStatsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierStatsQueryIsNotConstructed)
}

// CourierID returns the courier whose statistics are requested.
func (q GetCourierStatsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierStatsQueryResponse aggregates a courier's delivery performance
// and customer ratings.
//
// TotalAssigned counts the assignment log, so it includes orders later
// reassigned away or purged. DeliveryRate is a whole-number percentage,
// rounded, with zero for a courier who was never assigned anything.
// AverageDeliveryTimeSeconds covers orders having both an assignment and a
// delivery timestamp.
type GetCourierStatsQueryResponse struct {
	CourierID                  kernel.UUID
	Name                       string
	IsActive                   bool
	TotalAssigned              int64
	TotalDelivered             int64
	DeliveryRate               int
	AverageDeliveryTimeSeconds float64
	AverageRating              float64
	TotalRatings               int64
	RatingDistribution         map[int]int64
}

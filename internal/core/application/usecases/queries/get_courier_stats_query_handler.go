package queries

import (
	"context"
	"math"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierStatsQueryHandler derives one courier's statistics from the
// orders table, the assignment log, and the ratings table.
type GetCourierStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierStatsQueryHandler creates a handler for courier statistics.
func NewGetCourierStatsQueryHandler(db *gorm.DB) GetCourierStatsQueryHandler {
	return GetCourierStatsQueryHandler{db: db}
}

// Handle executes the aggregation. Returns ObjectNotFoundError for an unknown
// courier rather than a zeroed response, so callers can tell "no such
// courier" from "no activity yet".
func (h GetCourierStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStatsQuery,
) (GetCourierStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	response := GetCourierStatsQueryResponse{
		CourierID:          query.CourierID(),
		RatingDistribution: make(map[int]int64, 5),
	}

	var identity struct {
		Name     string
		IsActive bool
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT name, is_active FROM couriers WHERE id = ?
	`, query.CourierID().Bytes()).Scan(&identity)
	if result.Error != nil {
		return GetCourierStatsQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetCourierStatsQueryResponse{},
			errs.NewObjectNotFoundError("courierID", query.CourierID())
	}
	response.Name = identity.Name
	response.IsActive = identity.IsActive

	var performance struct {
		TotalAssigned  int64
		TotalDelivered int64
		AvgSeconds     float64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM order_assignments WHERE courier_id = @courier) AS total_assigned,
			(SELECT COUNT(*) FROM orders
				WHERE courier_id = @courier AND status IN (@delivered, @completed)) AS total_delivered,
			(SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (delivered_at - assigned_at))), 0) FROM orders
				WHERE courier_id = @courier
				AND delivered_at IS NOT NULL
				AND assigned_at IS NOT NULL) AS avg_seconds
	`, map[string]any{
		"courier":   query.CourierID().Bytes(),
		"delivered": deliveredStatus,
		"completed": completedStatus,
	}).Scan(&performance).Error
	if err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	response.TotalAssigned = performance.TotalAssigned
	response.TotalDelivered = performance.TotalDelivered
	response.AverageDeliveryTimeSeconds = performance.AvgSeconds
	if performance.TotalAssigned > 0 {
		rate := float64(performance.TotalDelivered) / float64(performance.TotalAssigned) * 100
		response.DeliveryRate = int(math.Round(rate))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT stars, COUNT(*)
		FROM ratings
		WHERE courier_id = ?
		GROUP BY stars
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return GetCourierStatsQueryResponse{}, err
	}
	defer rows.Close()

	var starSum int64
	for rows.Next() {
		var stars int
		var count int64
		if err = rows.Scan(&stars, &count); err != nil {
			return GetCourierStatsQueryResponse{}, err
		}
		response.RatingDistribution[stars] = count
		response.TotalRatings += count
		starSum += int64(stars) * count
	}
	if err = rows.Err(); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	if response.TotalRatings > 0 {
		response.AverageRating = float64(starSum) / float64(response.TotalRatings)
	}

	return response, nil
}

package queries

import (
	"context"
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCouriersOverviewQueryHandler builds the operations dashboard read model.
// Joins the courier roster against the assignment log, the orders table, and
// the ratings table in one aggregate query.
type GetCouriersOverviewQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersOverviewQueryHandler creates a handler for the overview query.
func NewGetCouriersOverviewQueryHandler(db *gorm.DB) GetCouriersOverviewQueryHandler {
	return GetCouriersOverviewQueryHandler{db: db}
}

// Handle executes the aggregation. Couriers with no activity appear with
// zeroed figures; the sort column comes from the query's whitelist.
func (h GetCouriersOverviewQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersOverviewQuery,
) (GetCouriersOverviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCouriersOverviewQueryResponse{}, err
	}

	response := GetCouriersOverviewQueryResponse{
		Couriers: make([]CourierOverviewResponse, 0),
	}

	sortColumn := map[string]string{
		OverviewSortByAverageRating:   "average_rating",
		OverviewSortByTotalRatings:    "total_ratings",
		OverviewSortByTotalDeliveries: "total_deliveries",
	}[query.SortBy()]

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			c.id,
			c.name,
			c.is_active,
			COALESCE(a.total_assigned, 0) AS total_assigned,
			COALESCE(d.total_deliveries, 0) AS total_deliveries,
			COALESCE(r.average_rating, 0) AS average_rating,
			COALESCE(r.total_ratings, 0) AS total_ratings
		FROM couriers c
		LEFT JOIN (
			SELECT courier_id, COUNT(*) AS total_assigned
			FROM order_assignments GROUP BY courier_id
		) a ON a.courier_id = c.id
		LEFT JOIN (
			SELECT courier_id, COUNT(*) AS total_deliveries
			FROM orders WHERE status IN (@delivered, @completed) GROUP BY courier_id
		) d ON d.courier_id = c.id
		LEFT JOIN (
			SELECT courier_id, AVG(stars) AS average_rating, COUNT(*) AS total_ratings
			FROM ratings GROUP BY courier_id
		) r ON r.courier_id = c.id
		ORDER BY %s %s, c.name
	`, sortColumn, query.SortDir()), map[string]any{
		"delivered": deliveredStatus,
		"completed": completedStatus,
	}).Rows()
	if err != nil {
		return GetCouriersOverviewQueryResponse{}, err
	}
	defer rows.Close()

	var totalAssigned int64
	for rows.Next() {
		var row CourierOverviewResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&row.Name,
			&row.IsActive,
			&row.TotalAssigned,
			&row.TotalDeliveries,
			&row.AverageRating,
			&row.TotalRatings,
		)
		if err != nil {
			return GetCouriersOverviewQueryResponse{}, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCouriersOverviewQueryResponse{}, idErr
		}
		row.ID = courierID

		response.Couriers = append(response.Couriers, row)
		response.TotalDeliveries += row.TotalDeliveries
		response.TotalRatings += row.TotalRatings
		totalAssigned += row.TotalAssigned
	}

	if err = rows.Err(); err != nil {
		return GetCouriersOverviewQueryResponse{}, err
	}

	if totalAssigned > 0 {
		rate := float64(response.TotalDeliveries) / float64(totalAssigned) * 100
		response.OverallDeliveryRate = int(math.Round(rate))
	}

	return response, nil
}

package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query, excluding completed and cancelled orders.
// Oldest orders come first so stalled ones surface at the top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			courier_id,
			assigned_at,
			estimated_delivery_time
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, int(order.Completed), int(order.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetActiveOrdersQueryResponse
		var id uuid.UUID
		var status int
		var courierID uuid.NullUUID
		var assignedAt, eta sql.NullTime

		err = rows.Scan(&id, &row.OrderNumber, &status, &courierID, &assignedAt, &eta)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = orderID
		row.Status = order.Status(status)

		if courierID.Valid {
			cid, cidErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cidErr != nil {
				return nil, cidErr
			}
			row.CourierID = &cid
		}
		if assignedAt.Valid {
			at := assignedAt.Time
			row.AssignedAt = &at
		}
		if eta.Valid {
			at := eta.Time
			row.EstimatedDeliveryTime = &at
		}

		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

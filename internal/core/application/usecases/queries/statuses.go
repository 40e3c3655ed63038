package queries

import "fulfillment/internal/core/domain/model/order"

// Status values bound as parameters in the raw aggregation SQL.
var (
	deliveredStatus = int(order.Delivered)
	completedStatus = int(order.Completed)
)

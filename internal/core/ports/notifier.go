package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// Notifier announces order lifecycle events to interested parties. Delivery
// is best effort and happens after the owning transaction commits, so the
// methods return no error.
type Notifier interface {
	// OrderAssigned fires when a courier is bound to an order, including reassignment.
	OrderAssigned(ctx context.Context, o *order.Order)

	// OrderStatusChanged fires on every successful status transition.
	OrderStatusChanged(ctx context.Context, o *order.Order, from order.Status)
}

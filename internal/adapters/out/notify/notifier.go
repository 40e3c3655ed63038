// Package notify announces order lifecycle events. The current implementation
// writes structured log records; a broker-backed implementation can replace
// it behind the same port without touching the use cases.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
)

// SlogNotifier emits lifecycle events as structured log records.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

// OrderAssigned announces a courier binding, including reassignment.
func (n *SlogNotifier) OrderAssigned(ctx context.Context, o *order.Order) {
	courierID := ""
	if id := o.CourierID(); id != nil {
		courierID = id.String()
	}
	n.logger.InfoContext(ctx, "order assigned",
		slog.String("order_id", o.ID().String()),
		slog.String("order_number", o.OrderNumber()),
		slog.String("courier_id", courierID),
	)
}

// OrderStatusChanged announces a successful status transition.
func (n *SlogNotifier) OrderStatusChanged(ctx context.Context, o *order.Order, from order.Status) {
	n.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", o.ID().String()),
		slog.String("order_number", o.OrderNumber()),
		slog.String("from", from.String()),
		slog.String("to", o.Status().String()),
	)
}

package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DeliveredFilter narrows a purge of delivered orders. Zero-value fields are
// ignored; an empty filter matches every delivered order.
type DeliveredFilter struct {
	// DateFrom and DateTo bound the delivery timestamp, inclusive.
	DateFrom time.Time
	DateTo   time.Time
	// OlderThan matches orders delivered before now minus this duration.
	OlderThan time.Duration
}

// OrderRepository defines the persistence contract for order aggregates,
// including the append-only assignment log used by courier statistics.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. Concurrent mutators of the same order
	// serialize on this lock; callers re-check state after acquiring it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetDeliveredBefore retrieves orders delivered before the cutoff that
	// have not been completed yet. Used by the completion job.
	GetDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// DeleteDelivered removes delivered orders matching the filter and
	// returns how many rows went. Assignment log entries and ratings stay.
	DeleteDelivered(ctx context.Context, filter DeliveredFilter) (int64, error)

	// LogAssignment appends a courier-order pairing to the assignment log.
	// Recording the same pairing twice is a no-op.
	LogAssignment(ctx context.Context, record order.AssignmentRecord) error
}

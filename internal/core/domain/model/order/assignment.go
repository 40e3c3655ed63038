package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRecord is the append-only audit fact that a courier was, at some
// point, assigned to an order. Records are never removed on reassignment or
// order purge: a courier's historical totalAssigned count reflects "was ever
// assigned", so the performance aggregator reads these records rather than
// the order's current courier reference.
type AssignmentRecord struct {
	OrderID    kernel.UUID
	CourierID  kernel.UUID
	AssignedAt time.Time
}

// NewAssignmentRecord creates a validated assignment record.
func NewAssignmentRecord(orderID, courierID kernel.UUID, assignedAt time.Time) (AssignmentRecord, error) {
	if err := orderID.Validate(); err != nil {
		return AssignmentRecord{}, err
	}
	if err := courierID.Validate(); err != nil {
		return AssignmentRecord{}, err
	}

	return AssignmentRecord{
		OrderID:    orderID,
		CourierID:  courierID,
		AssignedAt: assignedAt.UTC(),
	}, nil
}

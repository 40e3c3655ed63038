// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status and courier for the lifecycle queries and the jobs.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber           string     `gorm:"uniqueIndex;not null"`
	Status                int        `gorm:"index"`
	CourierID             *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt            *time.Time
	EstimatedDeliveryTime *time.Time
	DeliveredAt           *time.Time `gorm:"index"`
	DeliveryNotes         string
	TotalAmountCents      int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AssignmentDTO is one row of the append-only assignment log. The composite
// primary key makes re-recording the same pairing a conflict, which the
// repository turns into a no-op.
type AssignmentDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AssignedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for assignment log entries.
func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		Status:                int(aggregate.Status()),
		CourierID:             courierID,
		AssignedAt:            aggregate.AssignedAt(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		DeliveredAt:           aggregate.DeliveredAt(),
		DeliveryNotes:         aggregate.DeliveryNotes(),
		TotalAmountCents:      aggregate.TotalAmount().Cents(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// RestoreOrder revalidates the courier binding, so a corrupted row fails here
// rather than deeper in a use case.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalAmountCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Status(dto.Status),
		courierID,
		dto.AssignedAt,
		dto.EstimatedDeliveryTime,
		dto.DeliveredAt,
		dto.DeliveryNotes,
		total,
	)
}

// assignmentFromDomain converts an assignment record to its database row.
func assignmentFromDomain(record order.AssignmentRecord) AssignmentDTO {
	return AssignmentDTO{
		OrderID:    record.OrderID.Bytes(),
		CourierID:  record.CourierID.Bytes(),
		AssignedAt: record.AssignedAt,
	}
}

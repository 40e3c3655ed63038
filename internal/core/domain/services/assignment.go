package services

import (
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/order"
)

// AssignmentService binds couriers to orders. It owns the cross-aggregate
// rules of assignment: the courier must be active, and every pairing yields
// an assignment record for the statistics log.
type AssignmentService struct{}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService() AssignmentService {
	return AssignmentService{}
}

// Assign binds an active courier to a confirmed order and returns the record
// to append to the assignment log.
func (s AssignmentService) Assign(o *order.Order, c *courier.Courier, at time.Time) (order.AssignmentRecord, error) {
	if err := c.EnsureActive(); err != nil {
		return order.AssignmentRecord{}, err
	}

	if err := o.AssignTo(c.ID(), at); err != nil {
		return order.AssignmentRecord{}, err
	}

	return order.NewAssignmentRecord(o.ID(), c.ID(), at)
}

// Reassign replaces the courier on an already assigned order. The original
// assignment time is preserved on the order; the record carries the handover
// time so the log keeps every courier the order ever touched.
func (s AssignmentService) Reassign(o *order.Order, replacement *courier.Courier, at time.Time) (order.AssignmentRecord, error) {
	if err := replacement.EnsureActive(); err != nil {
		return order.AssignmentRecord{}, err
	}

	if err := o.ReassignTo(replacement.ID()); err != nil {
		return order.AssignmentRecord{}, err
	}

	return order.NewAssignmentRecord(o.ID(), replacement.ID(), at)
}

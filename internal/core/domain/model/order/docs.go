// Package order implements the Order aggregate and its status state machine.
//
// An order enters the subsystem in Pending status after checkout and moves
// forward along a fixed graph:
//
//	Pending -> Confirmed -> Assigned -> OutForDelivery -> Delivered -> Completed
//	                                                   (Cancelled from any pre-Delivered state)
//
// Each transition is scoped to an actor role: admins confirm, assign (through
// the assignment engine), complete and cancel; the assigned courier takes the
// order out for delivery and marks it delivered. The aggregate enforces the
// binding invariant that an order references a courier exactly while its
// status is Assigned, OutForDelivery, Delivered, or Completed.
package order

package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements the single authoritative state machine for the delivery
// lifecycle: every allowed transition, together with the role permitted to
// request it, lives in one table here. UI option lists are derived from
// AllowedTargets, never duplicated client-side.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Assigned ──> OutForDelivery ──> Delivered ──> Completed
//	    │            │            │               │
//	    └────────────┴────────────┴───────────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of an order arriving from checkout.
	Pending

	// Confirmed indicates an admin accepted the order for fulfillment.
	Confirmed

	// Assigned indicates the order is bound to a courier.
	Assigned

	// OutForDelivery indicates the assigned courier picked the order up.
	OutForDelivery

	// Delivered indicates the courier handed the order over.
	Delivered

	// Completed indicates the delivery was closed out by an admin or batch job.
	// This is a terminal state.
	Completed

	// Cancelled indicates the order was withdrawn before delivery.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns the wire/display names of all statuses.
// The names are the contract of the REST surface; do not rename.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Assigned:       "assigned",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns only the valid statuses.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		Assigned:       "assigned",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// transitions returns the actor-scoped transition table.
// An entry transitions()[from][to] = role means role may move an order from
// from to to. Absence of an entry makes the transition illegal for everyone.
//
// Confirmed -> Assigned is listed for the admin role but is reachable only
// through the assignment engine; TransitionBy on the aggregate rejects it.
func transitions() map[Status]map[Status]kernel.Role {
	return map[Status]map[Status]kernel.Role{
		Pending: {
			Confirmed: kernel.RoleAdmin,
			Cancelled: kernel.RoleAdmin,
		},
		Confirmed: {
			Assigned:  kernel.RoleAdmin,
			Cancelled: kernel.RoleAdmin,
		},
		Assigned: {
			OutForDelivery: kernel.RoleCourier,
			Cancelled:      kernel.RoleAdmin,
		},
		OutForDelivery: {
			Delivered: kernel.RoleCourier,
			Cancelled: kernel.RoleAdmin,
		},
		Delivered: {
			Completed: kernel.RoleAdmin,
		},
	}
}

// StatusFromString parses a status from its wire name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire/display name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions or field mutations are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowsCourier reports whether an order in this status must reference a courier.
// This is one half of the binding invariant: courier present iff status is
// Assigned, OutForDelivery, Delivered, or Completed.
func (s Status) AllowsCourier() bool {
	switch s {
	case Assigned, OutForDelivery, Delivered, Completed:
		return true
	default:
		return false
	}
}

// AllowsDetailsUpdate reports whether estimated delivery time and delivery
// notes may still be edited by the assigned courier.
func (s Status) AllowsDetailsUpdate() bool {
	return s == Assigned || s == OutForDelivery
}

// AllowsRating reports whether a customer may leave a rating. Ratings open up
// at delivery and stay open after completion.
func (s Status) AllowsRating() bool {
	return s == Delivered || s == Completed
}

// ValidateCourierBinding validates the consistency between order status and
// courier assignment: a courier reference is present exactly in the statuses
// for which AllowsCourier is true.
func (s Status) ValidateCourierBinding(hasCourier bool) error {
	if hasCourier && !s.AllowsCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !hasCourier && s.AllowsCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}

// TransitionTo validates and performs a transition of the state machine.
//
// Returns:
//   - (to, nil) when the edge exists and the role is permitted
//   - IllegalTransitionError naming the (from, to) pair when the edge does not exist
//   - ForbiddenError when the edge exists but the role is not permitted to use it
func (s Status) TransitionTo(to Status, role kernel.Role) (Status, error) {
	allowedRole, ok := transitions()[s][to]
	if !ok {
		return Unknown, errs.NewIllegalTransitionError(s.String(), to.String())
	}

	if role != allowedRole {
		return Unknown, errs.NewForbiddenError(
			string(role),
			fmt.Sprintf("transition %s -> %s", s.String(), to.String()),
		)
	}

	return to, nil
}

// AllowedTargets returns the statuses the given role may move an order in
// this status to. Dashboards derive their status option lists from this,
// keeping the state machine defined exactly once.
func (s Status) AllowedTargets(role kernel.Role) []Status {
	targets := make([]Status, 0, 2)
	for to, allowedRole := range transitions()[s] {
		if allowedRole == role {
			targets = append(targets, to)
		}
	}
	return targets
}

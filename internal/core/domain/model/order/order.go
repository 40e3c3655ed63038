package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNumberIsRequired is returned when creating an order without a number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("orderNumber")
)

// Order represents a customer purchase moving through the delivery lifecycle.
// It is the aggregate root owning the order's status, its courier binding,
// and the delivery bookkeeping fields (timestamps, notes).
//
// Order maintains these invariants:
//   - Status only moves forward along the transition graph in status.go;
//     reassignment is the only operation that touches an already-bound order
//     without a status change, and it changes nothing but the courier reference.
//   - A courier reference is present exactly while status is Assigned,
//     OutForDelivery, Delivered, or Completed. Cancelling an assigned order
//     therefore releases the courier.
//   - Terminal statuses (Completed, Cancelled) accept no further mutation.
//
// All mutation methods take the acting principal and enforce role and
// ownership rules; the HTTP layer never re-implements them.
type Order struct {
	// id is the unique identifier of the order
	id kernel.UUID

	// orderNumber is the human-readable unique number shown on dashboards
	orderNumber string

	// status is the current state in the delivery lifecycle
	status Status

	// courierID is the assigned courier (nil while unassigned); the order
	// does not own the courier record, it only references it
	courierID *kernel.UUID

	// assignedAt is set by the assignment engine, deliveredAt by the courier
	assignedAt            *time.Time
	estimatedDeliveryTime *time.Time
	deliveredAt           *time.Time

	// deliveryNotes is free text mutable only by the assigned courier
	// while the details window is open
	deliveryNotes string

	// totalAmount is the order total; never negative
	totalAmount kernel.Money

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an order entering the subsystem from checkout.
// The order starts in Pending status with no courier bound.
func NewOrder(id kernel.UUID, orderNumber string, totalAmount kernel.Money) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, ErrOrderNumberIsRequired
	}

	return &Order{
		id:          id,
		orderNumber: orderNumber,
		status:      Pending,
		totalAmount: totalAmount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence.
// It revalidates the courier binding invariant so corrupted rows are
// rejected at the repository boundary instead of flowing into use cases.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	status Status,
	courierID *kernel.UUID,
	assignedAt *time.Time,
	estimatedDeliveryTime *time.Time,
	deliveredAt *time.Time,
	deliveryNotes string,
	totalAmount kernel.Money,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, ErrOrderNumberIsRequired
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCourierBinding(courierID != nil); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                    id,
		orderNumber:           orderNumber,
		status:                status,
		courierID:             courierID,
		assignedAt:            assignedAt,
		estimatedDeliveryTime: estimatedDeliveryTime,
		deliveredAt:           deliveredAt,
		deliveryNotes:         deliveryNotes,
		totalAmount:           totalAmount,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CourierID returns the assigned courier's ID, or nil while unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// AssignedAt returns when the order was last bound to a courier.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// EstimatedDeliveryTime returns the courier's current delivery estimate.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// DeliveredAt returns when the order was handed over.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// DeliveryNotes returns the courier's free-text notes.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// AssignTo binds the order to a courier.
//
// Preconditions: the order is Confirmed and has no courier bound. The caller
// verifies the courier exists and is active before invoking this method.
//
// Effects: courier reference set, status becomes Assigned, assignedAt
// recorded. A second call with any courier fails with InvalidState because
// the order is no longer Confirmed; reassignment is the only path to change
// the courier afterwards.
func (o *Order) AssignTo(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status != Confirmed {
		return errs.NewInvalidStateError("assign courier", o.status.String())
	}

	newStatus, err := o.status.TransitionTo(Assigned, kernel.RoleAdmin)
	if err != nil {
		return err
	}

	assignedAt := at.UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.assignedAt = &assignedAt
	return nil
}

// ReassignTo replaces the courier on an already-assigned order.
//
// Reassignment is an operational override for an unavailable courier: it
// must not be usable to skip the Confirmed -> Assigned gate and must not
// regress state. Status, assignedAt, the delivery estimate, and notes all
// stay untouched because they describe the shipment, not the courier.
func (o *Order) ReassignTo(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}

	if o.courierID == nil || (o.status != Assigned && o.status != OutForDelivery) {
		return errs.NewInvalidStateError("reassign courier", o.status.String())
	}

	o.courierID = &newCourierID
	return nil
}

// TransitionBy applies a status change requested by an actor.
//
// The actor-scoped transition table in status.go decides legality; this
// method adds the ownership rule (a courier may only act on orders bound to
// them), rejects direct transitions to Assigned (the assignment engine owns
// that edge), and applies the side effects of reaching a state: deliveredAt
// on Delivered, courier release on Cancelled.
func (o *Order) TransitionBy(actor kernel.Actor, to Status, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if to == Assigned {
		return errs.NewInvalidStateError("assign a courier via a status change", o.status.String())
	}

	if actor.IsCourier() {
		if o.courierID == nil || !o.courierID.IsEqual(actor.ID()) {
			return errs.NewForbiddenError(
				string(actor.Role()),
				fmt.Sprintf("transition order %s", o.id.String()),
			)
		}
	}

	newStatus, err := o.status.TransitionTo(to, actor.Role())
	if err != nil {
		return err
	}

	o.status = newStatus

	switch newStatus {
	case Delivered:
		deliveredAt := at.UTC()
		o.deliveredAt = &deliveredAt
	case Cancelled:
		// Release the courier so the binding invariant holds in Cancelled.
		o.courierID = nil
	}

	return nil
}

// UpdateDeliveryDetails updates the delivery estimate and/or notes.
//
// Only the assigned courier may edit these fields, and only while the order
// is Assigned or OutForDelivery. Nil parameters leave the field unchanged.
func (o *Order) UpdateDeliveryDetails(actor kernel.Actor, estimatedDeliveryTime *time.Time, notes *string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !o.status.AllowsDetailsUpdate() {
		return errs.NewInvalidStateError("update delivery details", o.status.String())
	}

	if !actor.IsCourier() || o.courierID == nil || !o.courierID.IsEqual(actor.ID()) {
		return errs.NewForbiddenError(
			string(actor.Role()),
			fmt.Sprintf("update delivery details of order %s", o.id.String()),
		)
	}

	if estimatedDeliveryTime != nil {
		eta := estimatedDeliveryTime.UTC()
		o.estimatedDeliveryTime = &eta
	}
	if notes != nil {
		o.deliveryNotes = *notes
	}
	return nil
}

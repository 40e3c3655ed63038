package courier

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsInvalid is returned when the contact email is missing or malformed.
	ErrEmailIsInvalid = errs.NewValueIsInvalidError("email")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// Courier represents a delivery person.
// It is an aggregate root owning the courier's identity, contact info, and
// active flag. Performance and rating figures are derived on demand by the
// aggregation queries and are deliberately not part of this aggregate.
//
// Business rules:
//   - A courier must have a valid UUID, a non-empty name, and a plausible email
//   - Deactivation withdraws assignment eligibility but keeps the record,
//     because historical orders and ratings reference it
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the courier's display name
	name string
	// email and phone are the contact channels shown on the dashboard
	email string
	phone string
	// isActive gates assignment eligibility
	isActive bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an active courier from a promoted user account.
func NewCourier(id kernel.UUID, name, email, phone string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameIsRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrEmailIsInvalid
	}

	return &Courier{
		id:       id,
		name:     name,
		email:    email,
		phone:    phone,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a courier from persistence, including its active flag.
func RestoreCourier(id kernel.UUID, name, email, phone string, isActive bool) (*Courier, error) {
	c, err := NewCourier(id, name, email, phone)
	if err != nil {
		return nil, err
	}
	c.isActive = isActive
	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Email returns the courier's contact email.
func (c *Courier) Email() string {
	return c.email
}

// Phone returns the courier's contact phone.
func (c *Courier) Phone() string {
	return c.phone
}

// IsActive reports whether the courier may receive new assignments.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// Deactivate withdraws the courier from assignment. The record stays.
func (c *Courier) Deactivate() {
	c.isActive = false
}

// Activate restores assignment eligibility.
func (c *Courier) Activate() {
	c.isActive = true
}

// EnsureActive returns CourierInactiveError if the courier is deactivated.
// The assignment engine calls this before binding an order.
func (c *Courier) EnsureActive() error {
	if !c.isActive {
		return errs.NewCourierInactiveError(c.id.String())
	}
	return nil
}

package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the capability class of an acting principal.
// Roles are resolved by the identity collaborator and trusted as-is;
// the domain only decides what each role may do.
type Role string

const (
	// RoleAdmin drives confirmation, assignment, completion, cancellation, and purges.
	RoleAdmin Role = "admin"
	// RoleCourier is a delivery person; may only advance orders assigned to them.
	RoleCourier Role = "deliveryperson"
	// RoleCustomer may rate delivered orders.
	RoleCustomer Role = "customer"
)

// RoleFromString parses a role as resolved by the identity service.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCourier, RoleCustomer:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// ErrActorIsNotConstructed indicates an Actor that was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Actor is the acting principal behind a request: an identity plus its role.
// Every mutation of an order is performed by, and attributed to, an Actor.
//
// Actor is a value object; it carries no credentials, only the resolved
// identity. Ownership checks compare Actor.ID against the order's courier
// reference.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a resolved identity and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := RoleFromString(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// IsCourier reports whether the actor is a delivery person.
func (a Actor) IsCourier() bool {
	return a.role == RoleCourier
}

// Validate checks the actor was created via NewActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return ErrActorIsNotConstructed
	}
	if _, err := RoleFromString(string(a.role)); err != nil {
		return ErrActorIsNotConstructed
	}
	return nil
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetCourierActivityCommandIsNotConstructed = errors.New(
	"SetCourierActivityCommand must be created via NewSetCourierActivityCommand constructor",
)

// SetCourierActivityCommand represents activating or deactivating a courier.
// Deactivation withdraws assignment eligibility; in-flight orders stay bound
// until an admin reassigns them.
type SetCourierActivityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

// NewSetCourierActivityCommand creates a command to flip a courier's active flag.
func NewSetCourierActivityCommand(courierID kernel.UUID, active bool) (SetCourierActivityCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierActivityCommand{}, err
	}

	return SetCourierActivityCommand{
		courierID: courierID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierActivityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActivityCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier to update.
func (c SetCourierActivityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Active returns the desired eligibility flag.
func (c SetCourierActivityCommand) Active() bool {
	return c.active
}

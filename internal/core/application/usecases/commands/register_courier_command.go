package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand represents promoting a user account to the delivery
// role, registering them as a courier eligible for assignment.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	email     string
	phone     string

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a command to register a courier.
func NewRegisterCourierCommand(courierID kernel.UUID, name, email, phone string) (RegisterCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RegisterCourierCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredError("name")
	}

	return RegisterCourierCommand{
		courierID: courierID,
		name:      name,
		email:     email,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the courier's identifier, shared with the user account.
func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Email returns the courier's contact email.
func (c RegisterCourierCommand) Email() string {
	return c.email
}

// Phone returns the courier's contact phone.
func (c RegisterCourierCommand) Phone() string {
	return c.phone
}

package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeDeliveredOrdersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	olderThan := 30 * 24 * time.Hour

	cmd, err := commands.NewPurgeDeliveredOrdersCommand(
		testAdmin(t), time.Time{}, time.Time{}, olderThan, true,
	)
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		ordersRepo.On("DeleteDelivered", ctx, ports.DeliveredFilter{OlderThan: olderThan}).
			Return(int64(7), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeDeliveredOrdersCommandHandler(factory)
	purged, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(7), purged)
	uow.AssertExpectations(t)
}

func TestPurgeDeliveredOrdersCommandHandler_Handle_WithoutConfirmation(t *testing.T) {
	cmd, err := commands.NewPurgeDeliveredOrdersCommand(
		testAdmin(t), time.Time{}, time.Time{}, 0, false,
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewPurgeDeliveredOrdersCommandHandler(factory)
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConfirmationRequired)
	factory.AssertNotCalled(t, "Create")
}

func TestPurgeDeliveredOrdersCommandHandler_Handle_NonAdminForbidden(t *testing.T) {
	cmd, err := commands.NewPurgeDeliveredOrdersCommand(
		testCourierActor(t, kernel.NewUUID()), time.Time{}, time.Time{}, 0, true,
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewPurgeDeliveredOrdersCommandHandler(factory)
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

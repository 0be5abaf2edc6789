package commands_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderProgressCommandHandler_Handle_AdvancesOneStep(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	advancedAt := createdAt.Add(5 * time.Minute)
	orderID := kernel.NewUUID()
	stored := testStoredOrder(t, orderID, createdAt)

	cmd, err := commands.NewAdvanceOrderProgressCommand(orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	publisher := &recordingPublisher{}

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("GetForUpdate", ctx, orderID).Return(stored, nil),
		repo.On("Update", ctx, stored).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewAdvanceOrderProgressCommandHandler(
		factory, testAssembler(), publisher, fixedClock{now: advancedAt},
	)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Advanced)
	assert.Equal(t, order.Preparing.String(), result.Order.Status)
	require.Len(t, result.Order.StatusHistory, 2)
	assert.Equal(t, order.Preparing.String(), result.Order.StatusHistory[1].Status)
	assert.Equal(t, advancedAt, result.Order.StatusHistory[1].Timestamp)

	published := publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, result.Order, published[0])

	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAdvanceOrderProgressCommandHandler_Handle_DeliveredIsNoOp(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orderID := kernel.NewUUID()
	stored := testStoredOrder(t, orderID, createdAt)
	require.NoError(t, stored.SetStatus(order.Delivered, createdAt.Add(time.Minute)))

	cmd, err := commands.NewAdvanceOrderProgressCommand(orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	publisher := &recordingPublisher{}

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("GetForUpdate", ctx, orderID).Return(stored, nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewAdvanceOrderProgressCommandHandler(
		factory, testAssembler(), publisher, fixedClock{now: createdAt.Add(time.Hour)},
	)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Advanced)
	assert.Equal(t, order.Delivered.String(), result.Order.Status)
	require.Len(t, result.Order.StatusHistory, 2)

	assert.Empty(t, publisher.Published())
	repo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderProgressCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("orderID", orderID.String())

	cmd, err := commands.NewAdvanceOrderProgressCommand(orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	publisher := &recordingPublisher{}

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("GetForUpdate", ctx, orderID).Return(nil, notFound),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewAdvanceOrderProgressCommandHandler(
		factory, testAssembler(), publisher, fixedClock{now: time.Now()},
	)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, publisher.Published())
}

func TestAdvanceOrderProgressCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	ctx := context.Background()
	factory := new(MockOrderUoWFactory)

	handler := commands.NewAdvanceOrderProgressCommandHandler(
		factory, testAssembler(), &recordingPublisher{}, fixedClock{now: time.Now()},
	)

	_, err := handler.Handle(ctx, commands.AdvanceOrderProgressCommand{})

	require.ErrorIs(t, err, commands.ErrAdvanceOrderProgressCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

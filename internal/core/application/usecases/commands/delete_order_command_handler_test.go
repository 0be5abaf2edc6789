package commands_test

import (
	"context"
	"testing"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("Delete", ctx, orderID).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewDeleteOrderCommandHandler(factory)

	require.NoError(t, handler.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("orderID", orderID.String())

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		repo.On("Delete", ctx, orderID).Return(notFound),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewDeleteOrderCommandHandler(factory)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	ctx := context.Background()
	factory := new(MockOrderUoWFactory)

	handler := commands.NewDeleteOrderCommandHandler(factory)

	err := handler.Handle(ctx, commands.DeleteOrderCommand{})

	require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

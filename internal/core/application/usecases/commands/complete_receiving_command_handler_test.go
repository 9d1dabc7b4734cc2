package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixturePendingOrder builds a one-line order awaiting receiving.
func fixturePendingOrder(t *testing.T, orderID, lineID, productID kernel.UUID) *order.Order {
	t.Helper()

	line, err := order.NewLine(lineID, productID, "FC Kazan", 10)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		orderID, kernel.NewUUID(), "Order 01/09/26 #1", "FC Kazan",
		[]*order.Line{line}, time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func TestCompleteReceivingCommandHandler_Handle_DefectWithPhoto(t *testing.T) {
	ctx := t.Context()
	orderID, lineID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	aggregate := fixturePendingOrder(t, orderID, lineID, productID)

	cmd, err := commands.NewCompleteReceivingCommand(orderID, []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 10, DefectQty: 3},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	companyRepo := new(MockCompanyRepository)
	photos := new(MockPhotoEvidence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("PhotoEvidence").Return(photos).Once(),
		photos.On("CountDefectPhotos", ctx, orderID, productID).Return(1, nil).Once(),
		orderRepo.On("TransitionStatus", ctx, orderID, order.ReceivingPending, order.Received).
			Return(true, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("AdjustStock", ctx, productID, 7, 3).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, aggregate.CompanyID()).
			Return(fixtureCompany(t, aggregate.CompanyID(), ""), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteReceivingCommandHandler(factory, new(MockNotifier))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.ReceivingResult{ReceivedTotal: 10, DefectTotal: 3}, result)
	assert.Equal(t, order.Received, aggregate.Status())
	mock.AssertExpectationsForObjects(t, uow, orderRepo, productRepo, companyRepo, photos, factory)
}

func TestCompleteReceivingCommandHandler_Handle_DefectWithoutPhoto(t *testing.T) {
	ctx := t.Context()
	orderID, lineID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	aggregate := fixturePendingOrder(t, orderID, lineID, productID)

	cmd, err := commands.NewCompleteReceivingCommand(orderID, []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 10, DefectQty: 3},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	photos := new(MockPhotoEvidence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("PhotoEvidence").Return(photos).Once(),
		photos.On("CountDefectPhotos", ctx, orderID, productID).Return(0, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteReceivingCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	mock.AssertExpectationsForObjects(t, uow, orderRepo, photos, factory)
}

func TestCompleteReceivingCommandHandler_Handle_AlreadyReceived(t *testing.T) {
	ctx := t.Context()
	orderID, lineID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	aggregate := fixturePendingOrder(t, orderID, lineID, productID)
	_, err := aggregate.CompleteReceiving(
		[]order.ReceivingUpdate{{LineID: lineID, ReceivedQty: 10}}, time.Now().UTC(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteReceivingCommand(orderID, []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 10},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteReceivingCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	mock.AssertExpectationsForObjects(t, uow, orderRepo, factory)
}

func TestCompleteReceivingCommandHandler_Handle_LostTransitionRace(t *testing.T) {
	ctx := t.Context()
	orderID, lineID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	aggregate := fixturePendingOrder(t, orderID, lineID, productID)

	cmd, err := commands.NewCompleteReceivingCommand(orderID, []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 10},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("TransitionStatus", ctx, orderID, order.ReceivingPending, order.Received).
			Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteReceivingCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	mock.AssertExpectationsForObjects(t, uow, orderRepo, factory)
}

func TestCompleteReceivingCommandHandler_Handle_NotifiesOwner(t *testing.T) {
	ctx := t.Context()
	orderID, lineID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	aggregate := fixturePendingOrder(t, orderID, lineID, productID)

	cmd, err := commands.NewCompleteReceivingCommand(orderID, []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 10},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	companyRepo := new(MockCompanyRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("TransitionStatus", ctx, orderID, order.ReceivingPending, order.Received).
			Return(true, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("AdjustStock", ctx, productID, 10, 0).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, aggregate.CompanyID()).
			Return(fixtureCompany(t, aggregate.CompanyID(), "chat-42"), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, "chat-42", mock.AnythingOfType("string")).Return(true).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteReceivingCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	mock.AssertExpectationsForObjects(t, uow, orderRepo, productRepo, companyRepo, notifier, factory)
}

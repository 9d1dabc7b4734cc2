package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	sequence   int
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder(10, 5)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertLineCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithLines() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder(10, 5)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.CompanyID(), retrieved.CompanyID())
	suite.Equal(testOrder.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(order.ReceivingPending, retrieved.Status())
	suite.Equal(15, retrieved.PlannedQty())
	suite.Len(retrieved.Lines(), 2)
	suite.Nil(retrieved.CompletedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsReceivingOutcome() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder(10)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	lineID := testOrder.Lines()[0].ID()
	updates := []order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: 9, DefectQty: 2, AdjustmentQty: 1, AdjustmentNote: "torn box"},
	}
	_, err := testOrder.CompleteReceiving(updates, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Received, retrieved.Status())
	suite.Equal(9, retrieved.ReceivedQty())

	line := retrieved.Lines()[0]
	suite.Equal(9, line.ReceivedQty())
	suite.Equal(2, line.DefectQty())
	suite.Equal(1, line.AdjustmentQty())
	suite.Equal("torn box", line.AdjustmentNote())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateHeader_LeavesLineRowsUntouched() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Another worker packs 3 units directly on the line row.
	ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 3)
	suite.Require().NoError(err)
	suite.True(ok)

	suite.Require().NoError(suite.repository.UpdateHeader(ctx, testOrder))

	line, err := suite.repository.GetLine(ctx, lineID)
	suite.Require().NoError(err)
	suite.Equal(3, line.PackedQty())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecalculatePackedTotal_SumsLineRows() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 4)
	suite.Require().NoError(err)
	suite.True(ok)

	total, err := suite.repository.RecalculatePackedTotal(
		ctx, testOrder.ID(), testOrder.EffectivePlan(), time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Equal(4, total)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(4, retrieved.PackedQty())
	suite.Equal(order.Packing, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecalculatePackedTotal_RepairsUndercountedHeader() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two workers incremented the line but the header only recorded one of
	// them: line carries 5 packed while the header says 3.
	ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 5)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id = ?", testOrder.ID().Bytes()).
		Update("packed_qty", 3).Error)

	total, err := suite.repository.RecalculatePackedTotal(
		ctx, testOrder.ID(), testOrder.EffectivePlan(), time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Equal(5, total)

	// The header matches the line sum again on every subsequent read.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(5, retrieved.PackedQty())

	lineSum := 0
	for _, line := range retrieved.Lines() {
		lineSum += line.PackedQty()
	}
	suite.Equal(lineSum, retrieved.PackedQty())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecalculatePackedTotal_FullPlanReachesReadyToShip() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 10)
	suite.Require().NoError(err)
	suite.True(ok)

	total, err := suite.repository.RecalculatePackedTotal(
		ctx, testOrder.ID(), testOrder.EffectivePlan(), time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Equal(10, total)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyToShip, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRecalculatePackedTotal_CompletedOrder_Conflict() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	_, err := suite.repository.CompleteByIDs(ctx, []kernel.UUID{testOrder.ID()}, time.Now().UTC())
	suite.Require().NoError(err)

	_, err = suite.repository.RecalculatePackedTotal(
		ctx, testOrder.ID(), testOrder.EffectivePlan(), time.Now().UTC(),
	)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTransitionStatus_SingleWinner() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder(10)
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	ok, err := suite.repository.TransitionStatus(ctx, testOrder.ID(), order.ReceivingPending, order.Received)
	suite.Require().NoError(err)
	suite.True(ok)

	// Second attempt from the same source status loses.
	ok, err = suite.repository.TransitionStatus(ctx, testOrder.ID(), order.ReceivingPending, order.Received)
	suite.Require().NoError(err)
	suite.False(ok)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Received, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestIncrementLinePacked_RejectsOverpack() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 8)
	suite.Require().NoError(err)
	suite.True(ok)

	// 8 of 10 already packed, 3 more would exceed the net received stock.
	ok, err = suite.repository.IncrementLinePacked(ctx, lineID, 3)
	suite.Require().NoError(err)
	suite.False(ok)

	line, err := suite.repository.GetLine(ctx, lineID)
	suite.Require().NoError(err)
	suite.Equal(8, line.PackedQty())
	suite.Equal(2, line.PackingRemainder())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestIncrementLinePacked_ConcurrentWorkersOneWinner() {
	ctx := context.Background()

	testOrder := suite.createReceivedOrder(10)
	lineID := testOrder.Lines()[0].ID()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two workers race to pack 7 units each against a remainder of 10.
	const workers = 2
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := suite.repository.IncrementLinePacked(ctx, lineID, 7)
			suite.NoError(err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for ok := range results {
		if ok {
			won++
		}
	}
	suite.Equal(1, won)

	line, err := suite.repository.GetLine(ctx, lineID)
	suite.Require().NoError(err)
	suite.Equal(7, line.PackedQty())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCompleteByIDs_SkipsAlreadyCompleted() {
	ctx := context.Background()

	first := suite.createReceivedOrder(10)
	second := suite.createReceivedOrder(5)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	completedAt := time.Now().UTC().Truncate(time.Microsecond)

	completed, err := suite.repository.CompleteByIDs(ctx, []kernel.UUID{first.ID(), second.ID()}, completedAt)
	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{first.ID(), second.ID()}, completed)

	// A second sweep finds nothing left to complete.
	completed, err = suite.repository.CompleteByIDs(ctx, []kernel.UUID{first.ID(), second.ID()}, completedAt)
	suite.Require().NoError(err)
	suite.Empty(completed)

	retrieved, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, retrieved.Status())
	suite.Require().NotNil(retrieved.CompletedAt())
	suite.Equal(completedAt, retrieved.CompletedAt().UTC())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCompleteByIDs_EmptyInput_NoOp() {
	ctx := context.Background()

	completed, err := suite.repository.CompleteByIDs(ctx, nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Empty(completed)
}

// createPendingOrder builds a Receiving-Pending order with one line per
// planned quantity given.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder(plannedQtys ...int) *order.Order {
	lines := make([]*order.Line, 0, len(plannedQtys))
	for i, qty := range plannedQtys {
		destination := "FC Kazan"
		if i%2 == 1 {
			destination = "FC Tver"
		}
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), destination, qty)
		suite.Require().NoError(err)
		lines = append(lines, line)
	}

	// The order number is unique per database; tick the sequence for each
	// order the test creates.
	suite.sequence++

	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.FormatNumber(now, suite.sequence),
		"FC Kazan",
		lines,
		now,
	)
	suite.Require().NoError(err)
	return aggregate
}

// createReceivedOrder builds an order whose single line has been fully
// received without defects, ready for packing.
func (suite *OrderRepositoryIntegrationTestSuite) createReceivedOrder(receivedQty int) *order.Order {
	aggregate := suite.createPendingOrder(receivedQty)

	lineID := aggregate.Lines()[0].ID()
	_, err := aggregate.CompleteReceiving([]order.ReceivingUpdate{
		{LineID: lineID, ReceivedQty: receivedQty},
	}, time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertLineCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderLineDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/company"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateHeader(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(
	ctx context.Context, id kernel.UUID, from, to order.Status,
) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) IncrementLinePacked(
	ctx context.Context, lineID kernel.UUID, quantity int,
) (bool, error) {
	args := m.Called(ctx, lineID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) RecalculatePackedTotal(
	ctx context.Context, id kernel.UUID, effectivePlan int, now time.Time,
) (int, error) {
	args := m.Called(ctx, id, effectivePlan, now)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetLine(ctx context.Context, lineID kernel.UUID) (*order.Line, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Line), args.Error(1)
}

func (m *MockOrderRepository) CompleteByIDs(
	ctx context.Context, ids []kernel.UUID, completedAt time.Time,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, ids, completedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockCompanyRepository struct{ mock.Mock }

func (m *MockCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) BelongToCompany(
	ctx context.Context, companyID kernel.UUID, productIDs []kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, companyID, productIDs)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(
	ctx context.Context, productID kernel.UUID, stockDelta, defectDelta int,
) error {
	args := m.Called(ctx, productID, stockDelta, defectDelta)
	return args.Error(0)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) GetByCode(ctx context.Context, code string) (*employee.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByUser(
	ctx context.Context, userID kernel.UUID,
) (*employee.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockPackingEventRepository struct{ mock.Mock }

func (m *MockPackingEventRepository) Add(ctx context.Context, event *packing.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) FindExpired(
	ctx context.Context, today time.Time,
) ([]*shipment.Request, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Request), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, r *shipment.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockNumberAllocator struct{ mock.Mock }

func (m *MockNumberAllocator) Allocate(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

type MockPhotoEvidence struct{ mock.Mock }

func (m *MockPhotoEvidence) CountDefectPhotos(
	ctx context.Context, orderID, productID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, orderID, productID)
	return args.Int(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, chatID string, text string) bool {
	args := m.Called(ctx, chatID, text)
	return args.Bool(0)
}

// MockUoW satisfies every composed unit of work interface in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CompanyRepository() ports.CompanyRepository {
	args := m.Called()
	return args.Get(0).(ports.CompanyRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository {
	args := m.Called()
	return args.Get(0).(ports.EmployeeRepository)
}

func (m *MockUoW) PackingEventRepository() ports.PackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.PackingEventRepository)
}

func (m *MockUoW) ShipmentRequestRepository() ports.ShipmentRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRequestRepository)
}

func (m *MockUoW) OrderNumberAllocator() ports.OrderNumberAllocator {
	args := m.Called()
	return args.Get(0).(ports.OrderNumberAllocator)
}

func (m *MockUoW) PhotoEvidence() ports.PhotoEvidence {
	args := m.Called()
	return args.Get(0).(ports.PhotoEvidence)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockReceivingUoWFactory struct{ mock.Mock }

func (m *MockReceivingUoWFactory) Create() commands.ReceivingUoW {
	args := m.Called()
	return args.Get(0).(commands.ReceivingUoW)
}

type MockPackingUoWFactory struct{ mock.Mock }

func (m *MockPackingUoWFactory) Create() commands.PackingUoW {
	args := m.Called()
	return args.Get(0).(commands.PackingUoW)
}

type MockCompletionUoWFactory struct{ mock.Mock }

func (m *MockCompletionUoWFactory) Create() commands.CompletionUoW {
	args := m.Called()
	return args.Get(0).(commands.CompletionUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

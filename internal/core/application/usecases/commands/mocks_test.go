package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// missingCatalog resolves nothing; assembled views carry nil menu details.
type missingCatalog struct{}

func (missingCatalog) ResolveMenuItem(_ context.Context, id kernel.UUID) (*ports.MenuItem, error) {
	return nil, errs.NewObjectNotFoundError("menuItem", id.String())
}

// recordingPublisher captures published views in publish order.
type recordingPublisher struct {
	mu        sync.Mutex
	published []views.OrderView
}

func (p *recordingPublisher) PublishOrderUpdated(_ kernel.UUID, view views.OrderView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, view)
}

func (p *recordingPublisher) Published() []views.OrderView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]views.OrderView(nil), p.published...)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDGenerator struct{ id kernel.UUID }

func (g fixedIDGenerator) NewID() kernel.UUID { return g.id }

func testAssembler() views.Assembler {
	return views.NewAssembler(missingCatalog{})
}

func testPlaceCommand(t *testing.T) commands.PlaceOrderCommand {
	t.Helper()

	item, err := order.NewOrderItem(kernel.NewUUID(), 2, decimal.NewFromFloat(10.00))
	require.NoError(t, err)
	customer, err := order.NewCustomer("A", "B", "123")
	require.NoError(t, err)
	cmd, err := commands.NewPlaceOrderCommand([]order.OrderItem{item}, decimal.NewFromFloat(20.00), customer)
	require.NoError(t, err)
	return cmd
}

func testStoredOrder(t *testing.T, id kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()

	item, err := order.NewOrderItem(kernel.NewUUID(), 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	customer, err := order.NewCustomer("A", "B", "123")
	require.NoError(t, err)
	o, err := order.NewOrder(id, []order.OrderItem{item}, decimal.NewFromInt(5), customer, createdAt)
	require.NoError(t, err)
	return o
}

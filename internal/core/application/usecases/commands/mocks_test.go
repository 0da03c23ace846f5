package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/domain/model/shipping"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- repositories ---

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

func (m *MockOrderRepository) GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.SellerSubOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SellerSubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) Update(ctx context.Context, subOrder *order.SellerSubOrder) error {
	args := m.Called(ctx, subOrder)
	return args.Error(0)
}

func (m *MockSubOrderRepository) GetAllShippedBefore(ctx context.Context, cutoff time.Time) ([]*order.SellerSubOrder, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.SellerSubOrder), args.Error(1)
}

type MockReturnCaseRepository struct{ mock.Mock }

func (m *MockReturnCaseRepository) Add(ctx context.Context, r *returncase.ReturnRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnCaseRepository) Update(ctx context.Context, r *returncase.ReturnRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnCaseRepository) Get(ctx context.Context, id kernel.UUID) (*returncase.ReturnRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returncase.ReturnRequest), args.Error(1)
}

func (m *MockReturnCaseRepository) GetOpenByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*returncase.ReturnRequest, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returncase.ReturnRequest), args.Error(1)
}

type MockShippingHistoryRepository struct{ mock.Mock }

func (m *MockShippingHistoryRepository) Add(ctx context.Context, entry *shipping.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockShippingHistoryRepository) GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) ([]*shipping.HistoryEntry, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipping.HistoryEntry), args.Error(1)
}

// --- units of work ---

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFulfillmentUoW struct{ mockTx }

func (m *MockFulfillmentUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockFulfillmentUoW) ShippingHistoryRepository() ports.ShippingHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.ShippingHistoryRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockCaseUoW struct{ mockTx }

func (m *MockCaseUoW) ReturnCaseRepository() ports.ReturnCaseRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnCaseRepository)
}

func (m *MockCaseUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockCaseUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCaseUoWFactory struct{ mock.Mock }

func (m *MockCaseUoWFactory) Create() commands.CaseUoW {
	args := m.Called()
	return args.Get(0).(commands.CaseUoW)
}

type MockResolutionUoW struct{ mockTx }

func (m *MockResolutionUoW) ReturnCaseRepository() ports.ReturnCaseRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnCaseRepository)
}

func (m *MockResolutionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockResolutionUoW) ShippingHistoryRepository() ports.ShippingHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.ShippingHistoryRepository)
}

type MockResolutionUoWFactory struct{ mock.Mock }

func (m *MockResolutionUoWFactory) Create() commands.ResolutionUoW {
	args := m.Called()
	return args.Get(0).(commands.ResolutionUoW)
}

// --- collaborators ---

type MockRefundClient struct{ mock.Mock }

func (m *MockRefundClient) GetRefund(ctx context.Context, refundID kernel.UUID) (ports.Refund, error) {
	args := m.Called(ctx, refundID)
	return args.Get(0).(ports.Refund), args.Error(1)
}

func (m *MockRefundClient) ProcessFullRefund(
	ctx context.Context,
	orderID kernel.UUID,
	paymentTransactionID string,
	amount kernel.Money,
	reason string,
	initiator string,
) (ports.Refund, error) {
	args := m.Called(ctx, orderID, paymentTransactionID, amount, reason, initiator)
	return args.Get(0).(ports.Refund), args.Error(1)
}

func (m *MockRefundClient) ProcessPartialRefund(
	ctx context.Context,
	orderID kernel.UUID,
	paymentTransactionID string,
	sellerID kernel.UUID,
	amount kernel.Money,
	reason string,
	initiator string,
) (ports.Refund, error) {
	args := m.Called(ctx, orderID, paymentTransactionID, sellerID, amount, reason, initiator)
	return args.Get(0).(ports.Refund), args.Error(1)
}

type MockNotificationClient struct{ mock.Mock }

func (m *MockNotificationClient) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationClient) SendShippingNotification(ctx context.Context, subOrder *order.SellerSubOrder) error {
	args := m.Called(ctx, subOrder)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishSubOrderStatusChanged(ctx context.Context, subOrder *order.SellerSubOrder, previous order.SubOrderStatus) error {
	args := m.Called(ctx, subOrder, previous)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCaseResolved(ctx context.Context, r *returncase.ReturnRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// --- fixtures ---

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func fixtureAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(
		"Sam Okafor", "77 Quay Street", "", "Bristol", "", "BS1 4DB", "GB", "")
	require.NoError(t, err)
	return addr
}

func fixtureLines(t *testing.T, stores ...kernel.UUID) []services.OrderLine {
	t.Helper()
	lines := make([]services.OrderLine, 0, len(stores))
	for i, storeID := range stores {
		lines = append(lines, services.OrderLine{
			ProductID:   kernel.NewUUID(),
			ProductName: "Product",
			UnitPrice:   fixtureMoney(t, "10.00"),
			Quantity:    i + 1,
			StoreID:     storeID,
			StoreName:   "Store",
		})
	}
	return lines
}

// fixtureOrder builds a paid order with one sub-order per given store.
func fixtureOrder(t *testing.T, paid bool, stores ...kernel.UUID) *order.Order {
	t.Helper()
	ord, err := services.NewOrderAggregateBuilder().Build(
		kernel.NewUUID(), kernel.NewUUID(), "txn_fixture", fixtureAddress(t),
		fixtureMoney(t, "6.00"), fixtureLines(t, stores...), time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	if paid {
		require.NoError(t, ord.ApplyPaymentOutcome(true, time.Now().Add(-47*time.Hour)))
	}
	return ord
}

// progressToDelivered walks a paid sub-order to Delivered.
func progressToDelivered(t *testing.T, subOrder *order.SellerSubOrder, deliveredAt time.Time) {
	t.Helper()
	require.NoError(t, subOrder.TransitionTo(order.SubOrderPreparing, deliveredAt.Add(-2*time.Hour)))
	require.NoError(t, subOrder.Ship("TRK-FIX", "DHL", deliveredAt.Add(-time.Hour)))
	require.NoError(t, subOrder.TransitionTo(order.SubOrderDelivered, deliveredAt))
}

package queries_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/caserepo"
	"marketplace/internal/adapters/out/postgres/historyrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/domain/model/shipping"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const returnWindowDays = 14

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// QueriesIntegrationTestSuite verifies the read-side handlers against a real
// PostgreSQL schema seeded through the write-side repositories.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	uow       *postgres.GormUnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.SubOrderDTO{}, &orderrepo.SubOrderItemDTO{},
		&caserepo.CaseDTO{}, &caserepo.CaseItemDTO{},
		&historyrepo.HistoryEntryDTO{}))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, sub_orders, sub_order_items, return_cases, return_case_items, suborder_status_history CASCADE").Error)
	suite.uow = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetBuyerOrders_ListsNewestFirst() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()
	base := time.Now().Add(-48 * time.Hour)

	older := suite.seedOrder(buyerID, 1, base)
	newer := suite.seedOrder(buyerID, 2, base.Add(24*time.Hour))
	suite.seedOrder(kernel.NewUUID(), 1, base) // someone else's order

	query, err := queries.NewGetBuyerOrdersQuery(buyerID)
	suite.Require().NoError(err)

	handler := queries.NewGetBuyerOrdersQueryHandler(suite.db)
	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newer.OrderNumber(), result[0].OrderNumber)
	suite.Equal(older.OrderNumber(), result[1].OrderNumber)
	suite.Equal(2, result[0].SubOrderCount)
	suite.Equal("New", result[0].Status)
	suite.Equal(newer.GrandTotal().String(), result[0].GrandTotal)
}

func (suite *QueriesIntegrationTestSuite) TestGetBuyerOrders_NoOrders_ReturnsEmpty() {
	ctx := context.Background()

	query, err := queries.NewGetBuyerOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := queries.NewGetBuyerOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestGetStoreSubOrders_FiltersByStatus() {
	ctx := context.Background()
	now := time.Now()

	aggregate := suite.seedOrder(kernel.NewUUID(), 2, now.Add(-time.Hour))
	suite.Require().NoError(aggregate.ApplyPaymentOutcome(true, now))
	first := aggregate.SubOrders()[0]
	suite.Require().NoError(first.TransitionTo(order.SubOrderPreparing, now))
	suite.updateOrder(aggregate)

	storeID := first.StoreID()
	preparing := order.SubOrderPreparing
	query, err := queries.NewGetStoreSubOrdersQuery(storeID, &preparing, 1, 10)
	suite.Require().NoError(err)

	result, err := queries.NewGetStoreSubOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(first.SubOrderNumber(), result[0].SubOrderNumber)
	suite.Equal("Preparing", result[0].Status)
	suite.Equal(len(first.Items()), result[0].ItemCount)
	suite.NotNil(result[0].PaidAt)
}

func (suite *QueriesIntegrationTestSuite) TestGetStoreSubOrders_Paginates() {
	ctx := context.Background()
	base := time.Now().Add(-72 * time.Hour)
	storeID := kernel.NewUUID()

	for i := 0; i < 3; i++ {
		aggregate := suite.seedOrderForStore(kernel.NewUUID(), storeID, base.Add(time.Duration(i)*time.Hour))
		suite.Require().NoError(aggregate.ApplyPaymentOutcome(true, base.Add(time.Duration(i)*time.Hour)))
		suite.updateOrder(aggregate)
	}

	query, err := queries.NewGetStoreSubOrdersQuery(storeID, nil, 2, 2)
	suite.Require().NoError(err)

	result, err := queries.NewGetStoreSubOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *QueriesIntegrationTestSuite) TestCheckReturnEligibility_Verdicts() {
	ctx := context.Background()
	now := time.Now()
	buyerID := kernel.NewUUID()
	deliveredAt := now.AddDate(0, 0, -5)

	paidOnly := suite.seedOrder(buyerID, 1, now.AddDate(0, 0, -30))
	suite.Require().NoError(paidOnly.ApplyPaymentOutcome(true, now.AddDate(0, 0, -29)))
	suite.updateOrder(paidOnly)

	delivered := suite.seedOrder(buyerID, 1, now.AddDate(0, 0, -30))
	suite.Require().NoError(delivered.ApplyPaymentOutcome(true, now.AddDate(0, 0, -29)))
	deliveredSub := delivered.SubOrders()[0]
	suite.Require().NoError(deliveredSub.TransitionTo(order.SubOrderPreparing, deliveredAt.Add(-48*time.Hour)))
	suite.Require().NoError(deliveredSub.Ship("TRK-Q", "DHL", deliveredAt.Add(-24*time.Hour)))
	suite.Require().NoError(deliveredSub.TransitionTo(order.SubOrderDelivered, deliveredAt))
	suite.updateOrder(delivered)

	handler := queries.NewCheckReturnEligibilityQueryHandler(suite.db, fixedClock{now: now})

	suite.Run("not delivered", func() {
		query, err := queries.NewCheckReturnEligibilityQuery(
			buyerID, paidOnly.SubOrders()[0].ID(), returnWindowDays)
		suite.Require().NoError(err)

		resp, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.False(resp.Eligible)
		suite.Equal("cases can only be opened against delivered sub-orders", resp.Reason)
	})

	suite.Run("eligible within the window", func() {
		query, err := queries.NewCheckReturnEligibilityQuery(buyerID, deliveredSub.ID(), returnWindowDays)
		suite.Require().NoError(err)

		resp, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.True(resp.Eligible)
		suite.Require().NotNil(resp.WindowClosesAt)
		suite.WithinDuration(deliveredAt.AddDate(0, 0, returnWindowDays), *resp.WindowClosesAt, time.Second)
	})

	suite.Run("window expired", func() {
		expiredHandler := queries.NewCheckReturnEligibilityQueryHandler(
			suite.db, fixedClock{now: now.AddDate(0, 0, 20)})

		query, err := queries.NewCheckReturnEligibilityQuery(buyerID, deliveredSub.ID(), returnWindowDays)
		suite.Require().NoError(err)

		resp, err := expiredHandler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.False(resp.Eligible)
		suite.Equal("the return window has expired", resp.Reason)
	})

	suite.Run("not the buyer", func() {
		query, err := queries.NewCheckReturnEligibilityQuery(
			kernel.NewUUID(), deliveredSub.ID(), returnWindowDays)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)
		suite.Require().ErrorIs(err, errs.ErrNotAuthorized)
	})

	suite.Run("unknown sub-order", func() {
		query, err := queries.NewCheckReturnEligibilityQuery(buyerID, kernel.NewUUID(), returnWindowDays)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.Run("every item already in an open case", func() {
		items := make([]returncase.CaseItem, 0, len(deliveredSub.Items()))
		for _, item := range deliveredSub.Items() {
			caseItem, err := returncase.NewCaseItem(item.ID(), item.Quantity())
			suite.Require().NoError(err)
			items = append(items, caseItem)
		}
		openCase, err := returncase.NewReturnRequest(kernel.NewUUID(), deliveredSub.ID(),
			buyerID, deliveredSub.StoreID(), returncase.TypeReturn, "arrived damaged", items, now)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.uow.Create().ReturnCaseRepository().Add(ctx, openCase))

		query, err := queries.NewCheckReturnEligibilityQuery(buyerID, deliveredSub.ID(), returnWindowDays)
		suite.Require().NoError(err)

		resp, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.False(resp.Eligible)
		suite.Equal("every item is already covered by an open case", resp.Reason)

		// Rejecting the case frees the items again.
		suite.Require().NoError(openCase.UpdateStatus(returncase.StatusRejected, "not warranted"))
		suite.Require().NoError(suite.uow.Create().ReturnCaseRepository().Update(ctx, openCase))

		resp, err = handler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.True(resp.Eligible)
	})
}

func (suite *QueriesIntegrationTestSuite) TestGetSubOrderHistory_ReturnsTimeline() {
	ctx := context.Background()
	subOrderID := kernel.NewUUID()
	base := time.Now().Add(-2 * time.Hour)

	repo := historyrepo.NewGormShippingHistoryRepository(suite.db)
	preparing, err := shipping.NewHistoryEntry(kernel.NewUUID(), subOrderID,
		order.SubOrderPaid, order.SubOrderPreparing, "", "", "", base)
	suite.Require().NoError(err)
	shipped, err := shipping.NewHistoryEntry(kernel.NewUUID(), subOrderID,
		order.SubOrderPreparing, order.SubOrderShipped, "TRK-771", "UPS", "", base.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, preparing))
	suite.Require().NoError(repo.Add(ctx, shipped))

	query, err := queries.NewGetSubOrderHistoryQuery(subOrderID)
	suite.Require().NoError(err)

	timeline, err := queries.NewGetSubOrderHistoryQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(timeline, 2)
	suite.Equal("Preparing", timeline[0].NewStatus)
	suite.Equal("Shipped", timeline[1].NewStatus)
	suite.Equal("TRK-771", timeline[1].TrackingNumber)
	suite.Equal("UPS", timeline[1].Carrier)
}

func (suite *QueriesIntegrationTestSuite) TestExportOrdersCSV_WritesRangeOldestFirst() {
	ctx := context.Background()
	base := time.Now().Add(-10 * 24 * time.Hour)

	inRange := suite.seedOrder(kernel.NewUUID(), 1, base.Add(24*time.Hour))
	suite.seedOrder(kernel.NewUUID(), 1, base.Add(-24*time.Hour)) // before the range

	query, err := queries.NewExportOrdersCSVQuery(base, base.Add(48*time.Hour))
	suite.Require().NoError(err)

	var buf bytes.Buffer
	exported, err := queries.NewExportOrdersCSVQueryHandler(suite.db).Handle(ctx, query, &buf)
	suite.Require().NoError(err)
	suite.Equal(1, exported)

	records, err := csv.NewReader(&buf).ReadAll()
	suite.Require().NoError(err)

	suite.Require().Len(records, 2)
	suite.Equal("order_number", records[0][0])
	suite.Equal(inRange.OrderNumber(), records[1][0])
	suite.Equal(inRange.BuyerID().String(), records[1][1])
	suite.Equal("New", records[1][2])
	suite.Equal(inRange.GrandTotal().String(), records[1][5])
}

func (suite *QueriesIntegrationTestSuite) TestExportOrdersCSV_InvalidRange_Fails() {
	now := time.Now()

	_, err := queries.NewExportOrdersCSVQuery(now, now)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

// seedOrder persists an order for the buyer with the given number of stores.
func (suite *QueriesIntegrationTestSuite) seedOrder(buyerID kernel.UUID, stores int, createdAt time.Time) *order.Order {
	lines := make([]services.OrderLine, 0, stores)
	price, err := kernel.NewMoneyFromString("25.00")
	suite.Require().NoError(err)

	for i := 0; i < stores; i++ {
		lines = append(lines, services.OrderLine{
			ProductID:   kernel.NewUUID(),
			ProductName: "Ceramic Mug",
			UnitPrice:   price,
			Quantity:    1,
			StoreID:     kernel.NewUUID(),
			StoreName:   "Test Store",
		})
	}

	return suite.persistOrder(buyerID, lines, createdAt)
}

// seedOrderForStore persists a single-line order belonging to the given store.
func (suite *QueriesIntegrationTestSuite) seedOrderForStore(buyerID, storeID kernel.UUID, createdAt time.Time) *order.Order {
	price, err := kernel.NewMoneyFromString("25.00")
	suite.Require().NoError(err)

	lines := []services.OrderLine{{
		ProductID:   kernel.NewUUID(),
		ProductName: "Ceramic Mug",
		UnitPrice:   price,
		Quantity:    1,
		StoreID:     storeID,
		StoreName:   "Test Store",
	}}

	return suite.persistOrder(buyerID, lines, createdAt)
}

func (suite *QueriesIntegrationTestSuite) persistOrder(buyerID kernel.UUID, lines []services.OrderLine, createdAt time.Time) *order.Order {
	ctx := context.Background()

	address, err := kernel.NewAddress(
		"Dana Meyer", "12 Harbor Way", "", "Portland", "OR", "97201", "US", "+1-503-555-0142")
	suite.Require().NoError(err)

	shippingTotal, err := kernel.NewMoneyFromString("4.00")
	suite.Require().NoError(err)

	aggregate, err := services.NewOrderAggregateBuilder().Build(
		kernel.NewUUID(), buyerID, "txn_query_fixture", address, shippingTotal, lines, createdAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.uow.Create().OrderRepository().Add(ctx, aggregate))
	return aggregate
}

func (suite *QueriesIntegrationTestSuite) updateOrder(aggregate *order.Order) {
	suite.Require().NoError(
		suite.uow.Create().OrderRepository().Update(context.Background(), aggregate))
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

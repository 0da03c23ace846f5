package caserepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/caserepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"

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

// ReturnCaseRepositoryIntegrationTestSuite provides integration tests for
// ReturnCaseRepository using PostgreSQL containers.
type ReturnCaseRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *caserepo.GormReturnCaseRepository
	tracker    *MockAggregateTracker
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&caserepo.CaseDTO{}, &caserepo.CaseItemDTO{}))
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE return_cases, return_case_items CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = caserepo.NewGormReturnCaseRepository(suite.db, suite.tracker)
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsCase() {
	ctx := context.Background()

	original := suite.buildTestCase(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.CaseNumber(), retrieved.CaseNumber())
	suite.Equal(original.SubOrderID(), retrieved.SubOrderID())
	suite.Equal(original.BuyerID(), retrieved.BuyerID())
	suite.Equal(original.StoreID(), retrieved.StoreID())
	suite.Equal(returncase.TypeReturn, retrieved.CaseType())
	suite.Equal(returncase.StatusRequested, retrieved.Status())
	suite.Equal("arrived damaged", retrieved.Reason())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(original.Items()[0].ItemID(), retrieved.Items()[0].ItemID())
	suite.Equal(original.Items()[0].Quantity(), retrieved.Items()[0].Quantity())
	suite.Nil(retrieved.RefundID())
	suite.Nil(retrieved.RefundAmount())
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestUpdate_PersistsResolution() {
	ctx := context.Background()

	aggregate := suite.buildTestCase(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.UpdateStatus(returncase.StatusApproved, "photos confirm the damage"))
	refundID := kernel.NewUUID()
	refundAmount, err := kernel.NewMoneyFromString("39.80")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Resolve(
		returncase.ResolutionFullRefund, "defective on arrival", &refundID, &refundAmount, time.Now()))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(returncase.StatusCompleted, retrieved.Status())
	suite.Equal(returncase.ResolutionFullRefund, retrieved.ResolutionType())
	suite.Equal("defective on arrival", retrieved.ResolutionReason())
	suite.Equal("photos confirm the damage", retrieved.SellerNotes())
	suite.Require().NotNil(retrieved.RefundID())
	suite.Equal(refundID, *retrieved.RefundID())
	suite.Require().NotNil(retrieved.RefundAmount())
	suite.True(refundAmount.IsEqual(*retrieved.RefundAmount()))
	suite.NotNil(retrieved.ResolvedAt())
	suite.Equal(aggregate.Version()+1, retrieved.Version())
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	aggregate := suite.buildTestCase(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.UpdateStatus(returncase.StatusUnderReview, ""))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	err := suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestGetOpenByItemIDs_FindsOnlyOpenCases() {
	ctx := context.Background()

	coveredItemID := kernel.NewUUID()
	openCase := suite.buildTestCase(coveredItemID)
	suite.Require().NoError(suite.repository.Add(ctx, openCase))

	rejectedItemID := kernel.NewUUID()
	rejectedCase := suite.buildTestCase(rejectedItemID)
	suite.Require().NoError(rejectedCase.UpdateStatus(returncase.StatusRejected, "outside policy"))
	suite.Require().NoError(suite.repository.Add(ctx, rejectedCase))

	found, err := suite.repository.GetOpenByItemIDs(ctx, []kernel.UUID{coveredItemID, rejectedItemID})
	suite.Require().NoError(err)

	suite.Require().Len(found, 1)
	suite.Equal(openCase.ID(), found[0].ID())
}

func (suite *ReturnCaseRepositoryIntegrationTestSuite) TestGetOpenByItemIDs_NoMatches_ReturnsEmpty() {
	ctx := context.Background()

	aggregate := suite.buildTestCase(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	found, err := suite.repository.GetOpenByItemIDs(ctx, []kernel.UUID{kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Empty(found)
}

// buildTestCase creates a requested return case covering a single item.
func (suite *ReturnCaseRepositoryIntegrationTestSuite) buildTestCase(itemID kernel.UUID) *returncase.ReturnRequest {
	item, err := returncase.NewCaseItem(itemID, 1)
	suite.Require().NoError(err)

	aggregate, err := returncase.NewReturnRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		returncase.TypeReturn, "arrived damaged",
		[]returncase.CaseItem{item}, time.Now())
	suite.Require().NoError(err)

	return aggregate
}

func TestReturnCaseRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReturnCaseRepositoryIntegrationTestSuite))
}

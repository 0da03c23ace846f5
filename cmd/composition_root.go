package cmd

import (
	"log/slog"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// systemClock implements ports.Clock with the wall clock in UTC.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// CompositionRoot wires adapters into application handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher ports.OrderEventPublisher
	refunds   ports.RefundClient
	notifier  ports.NotificationClient
	clock     ports.Clock
	logger    *slog.Logger
}

// NewCompositionRoot creates the composition root from the shared adapters.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	refunds ports.RefundClient,
	notifier ports.NotificationClient,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		refunds:    refunds,
		notifier:   notifier,
		clock:      systemClock{},
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApplyPaymentOutcomeCommandHandler() commands.ApplyPaymentOutcomeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyPaymentOutcomeCommandHandler(f, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateSubOrderStatusCommandHandler() commands.UpdateSubOrderStatusCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateSubOrderStatusCommandHandler(f, c.clock, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateItemStatusesCommandHandler() commands.UpdateItemStatusesCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateItemStatusesCommandHandler(f, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateReturnCaseCommandHandler() commands.CreateReturnCaseCommandHandler {
	var f commands.CaseUoWFactory = FuncCaseUoWFactory(func() commands.CaseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnCaseCommandHandler(f, c.clock, c.config.ReturnWindowDays)
}

func (c *CompositionRoot) CreateUpdateCaseStatusCommandHandler() commands.UpdateCaseStatusCommandHandler {
	var f commands.CaseUoWFactory = FuncCaseUoWFactory(func() commands.CaseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCaseStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveCaseCommandHandler() commands.ResolveCaseCommandHandler {
	var f commands.ResolutionUoWFactory = FuncResolutionUoWFactory(func() commands.ResolutionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveCaseCommandHandler(f, c.refunds, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmOverdueDeliveriesCommandHandler() commands.ConfirmOverdueDeliveriesCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOverdueDeliveriesCommandHandler(
		f, c.clock, c.config.DeliveryAutoConfirmDays, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetBuyerOrdersQueryHandler() queries.GetBuyerOrdersQueryHandler {
	return queries.NewGetBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStoreSubOrdersQueryHandler() queries.GetStoreSubOrdersQueryHandler {
	return queries.NewGetStoreSubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckReturnEligibilityQueryHandler() queries.CheckReturnEligibilityQueryHandler {
	return queries.NewCheckReturnEligibilityQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetSubOrderHistoryQueryHandler() queries.GetSubOrderHistoryQueryHandler {
	return queries.NewGetSubOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateExportOrdersCSVQueryHandler() queries.ExportOrdersCSVQueryHandler {
	return queries.NewExportOrdersCSVQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server from all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	placeOrder := c.CreatePlaceOrderCommandHandler()
	applyPaymentOutcome := c.CreateApplyPaymentOutcomeCommandHandler()
	updateSubOrderStatus := c.CreateUpdateSubOrderStatusCommandHandler()
	updateItemStatuses := c.CreateUpdateItemStatusesCommandHandler()
	createReturnCase := c.CreateCreateReturnCaseCommandHandler()
	updateCaseStatus := c.CreateUpdateCaseStatusCommandHandler()
	resolveCase := c.CreateResolveCaseCommandHandler()

	return httpin.NewServer(
		&placeOrder,
		&applyPaymentOutcome,
		&updateSubOrderStatus,
		&updateItemStatuses,
		&createReturnCase,
		&updateCaseStatus,
		&resolveCase,
		c.CreateGetBuyerOrdersQueryHandler(),
		c.CreateGetStoreSubOrdersQueryHandler(),
		c.CreateCheckReturnEligibilityQueryHandler(),
		c.CreateGetSubOrderHistoryQueryHandler(),
		c.CreateExportOrdersCSVQueryHandler(),
		c.config.ReturnWindowDays,
	)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateConfirmOverdueDeliveriesCommandHandler(),
		c.config.DeliveryConfirmCron,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncCaseUoWFactory func() commands.CaseUoW

func (f FuncCaseUoWFactory) Create() commands.CaseUoW {
	return f()
}

type FuncResolutionUoWFactory func() commands.ResolutionUoW

func (f FuncResolutionUoWFactory) Create() commands.ResolutionUoW {
	return f()
}

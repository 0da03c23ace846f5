// Package http exposes the order fulfillment operations over a JSON REST API.
// Handlers translate requests into commands and queries, delegate to the
// application layer, and map typed errors to HTTP statuses.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Command and query handler contracts the server depends on. The concrete
// handlers from the application layer satisfy these.
type (
	placeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error
	}
	applyPaymentOutcomeHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPaymentOutcomeCommand) error
	}
	updateSubOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateSubOrderStatusCommand) error
	}
	updateItemStatusesHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateItemStatusesCommand) error
	}
	createReturnCaseHandler interface {
		Handle(ctx context.Context, cmd commands.CreateReturnCaseCommand) error
	}
	updateCaseStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCaseStatusCommand) error
	}
	resolveCaseHandler interface {
		Handle(ctx context.Context, cmd commands.ResolveCaseCommand) error
	}

	getBuyerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetBuyerOrdersQuery) ([]queries.GetBuyerOrdersQueryResponse, error)
	}
	getStoreSubOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetStoreSubOrdersQuery) ([]queries.GetStoreSubOrdersQueryResponse, error)
	}
	checkReturnEligibilityHandler interface {
		Handle(ctx context.Context, query queries.CheckReturnEligibilityQuery) (queries.CheckReturnEligibilityQueryResponse, error)
	}
	getSubOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetSubOrderHistoryQuery) ([]queries.GetSubOrderHistoryQueryResponse, error)
	}
	exportOrdersCSVHandler interface {
		Handle(ctx context.Context, query queries.ExportOrdersCSVQuery, out io.Writer) (int, error)
	}
)

// Server wires the REST routes to the application's command and query
// handlers.
type Server struct {
	placeOrder           placeOrderHandler
	applyPaymentOutcome  applyPaymentOutcomeHandler
	updateSubOrderStatus updateSubOrderStatusHandler
	updateItemStatuses   updateItemStatusesHandler
	createReturnCase     createReturnCaseHandler
	updateCaseStatus     updateCaseStatusHandler
	resolveCase          resolveCaseHandler

	getBuyerOrders         getBuyerOrdersHandler
	getStoreSubOrders      getStoreSubOrdersHandler
	checkReturnEligibility checkReturnEligibilityHandler
	getSubOrderHistory     getSubOrderHistoryHandler
	exportOrdersCSV        exportOrdersCSVHandler

	returnWindowDays int
}

// NewServer creates the HTTP server with all required handlers.
// returnWindowDays parameterizes the eligibility check endpoint.
func NewServer(
	placeOrder placeOrderHandler,
	applyPaymentOutcome applyPaymentOutcomeHandler,
	updateSubOrderStatus updateSubOrderStatusHandler,
	updateItemStatuses updateItemStatusesHandler,
	createReturnCase createReturnCaseHandler,
	updateCaseStatus updateCaseStatusHandler,
	resolveCase resolveCaseHandler,
	getBuyerOrders getBuyerOrdersHandler,
	getStoreSubOrders getStoreSubOrdersHandler,
	checkReturnEligibility checkReturnEligibilityHandler,
	getSubOrderHistory getSubOrderHistoryHandler,
	exportOrdersCSV exportOrdersCSVHandler,
	returnWindowDays int,
) *Server {
	return &Server{
		placeOrder:             placeOrder,
		applyPaymentOutcome:    applyPaymentOutcome,
		updateSubOrderStatus:   updateSubOrderStatus,
		updateItemStatuses:     updateItemStatuses,
		createReturnCase:       createReturnCase,
		updateCaseStatus:       updateCaseStatus,
		resolveCase:            resolveCase,
		getBuyerOrders:         getBuyerOrders,
		getStoreSubOrders:      getStoreSubOrders,
		checkReturnEligibility: checkReturnEligibility,
		getSubOrderHistory:     getSubOrderHistory,
		exportOrdersCSV:        exportOrdersCSV,
		returnWindowDays:       returnWindowDays,
	}
}

// RegisterRoutes attaches all routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:orderId/payment-outcome", s.ApplyPaymentOutcome)
	api.GET("/orders/export", s.ExportOrdersCSV)

	api.GET("/buyers/:buyerId/orders", s.GetBuyerOrders)

	api.PATCH("/suborders/:subOrderId/status", s.UpdateSubOrderStatus)
	api.PATCH("/suborders/:subOrderId/items", s.UpdateItemStatuses)
	api.GET("/suborders/:subOrderId/history", s.GetSubOrderHistory)
	api.GET("/suborders/:subOrderId/return-eligibility", s.CheckReturnEligibility)

	api.GET("/stores/:storeId/suborders", s.GetStoreSubOrders)

	api.POST("/cases", s.CreateReturnCase)
	api.PATCH("/cases/:caseId/status", s.UpdateCaseStatus)
	api.POST("/cases/:caseId/resolution", s.ResolveCase)
}

// Health reports service liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.placeOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ApplyPaymentOutcome handles POST /api/v1/orders/:orderId/payment-outcome.
func (s *Server) ApplyPaymentOutcome(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req applyPaymentOutcomeRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewApplyPaymentOutcomeCommand(orderID, req.Succeeded)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.applyPaymentOutcome.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateSubOrderStatus handles PATCH /api/v1/suborders/:subOrderId/status.
func (s *Server) UpdateSubOrderStatus(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateSubOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand(subOrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateSubOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItemStatuses handles PATCH /api/v1/suborders/:subOrderId/items.
func (s *Server) UpdateItemStatuses(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateItemStatusesRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand(subOrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateItemStatuses.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateReturnCase handles POST /api/v1/cases.
func (s *Server) CreateReturnCase(ctx echo.Context) error {
	var req createReturnCaseRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createReturnCase.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateCaseStatus handles PATCH /api/v1/cases/:caseId/status.
func (s *Server) UpdateCaseStatus(ctx echo.Context) error {
	caseID, err := kernel.UUIDFromString(ctx.Param("caseId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateCaseStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand(caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateCaseStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveCase handles POST /api/v1/cases/:caseId/resolution.
func (s *Server) ResolveCase(ctx echo.Context) error {
	caseID, err := kernel.UUIDFromString(ctx.Param("caseId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req resolveCaseRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := req.toCommand(caseID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.resolveCase.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// buyerOrderResponse is the wire form of one order in a buyer's listing.
type buyerOrderResponse struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	Status        string    `json:"status"`
	GrandTotal    string    `json:"grandTotal"`
	SubOrderCount int       `json:"subOrderCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GetBuyerOrders handles GET /api/v1/buyers/:buyerId/orders.
func (s *Server) GetBuyerOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.Param("buyerId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetBuyerOrdersQuery(buyerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getBuyerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]buyerOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = buyerOrderResponse{
			ID:            o.ID.String(),
			OrderNumber:   o.OrderNumber,
			Status:        o.Status,
			GrandTotal:    o.GrandTotal,
			SubOrderCount: o.SubOrderCount,
			CreatedAt:     o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// storeSubOrderResponse is the wire form of one sub-order in a store listing.
type storeSubOrderResponse struct {
	ID             string     `json:"id"`
	SubOrderNumber string     `json:"subOrderNumber"`
	Status         string     `json:"status"`
	Total          string     `json:"total"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	ItemCount      int        `json:"itemCount"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
}

// GetStoreSubOrders handles GET /api/v1/stores/:storeId/suborders.
// Supports optional status, page and pageSize query parameters.
func (s *Server) GetStoreSubOrders(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var status *order.SubOrderStatus
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, statusErr := order.SubOrderStatusFromString(raw)
		if statusErr != nil {
			return respondError(ctx, statusErr)
		}
		status = &parsed
	}

	page, err := intQueryParam(ctx, "page")
	if err != nil {
		return respondError(ctx, err)
	}
	pageSize, err := intQueryParam(ctx, "pageSize")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetStoreSubOrdersQuery(storeID, status, page, pageSize)
	if err != nil {
		return respondError(ctx, err)
	}

	subOrders, err := s.getStoreSubOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]storeSubOrderResponse, len(subOrders))
	for i, so := range subOrders {
		response[i] = storeSubOrderResponse{
			ID:             so.ID.String(),
			SubOrderNumber: so.SubOrderNumber,
			Status:         so.Status,
			Total:          so.Total,
			TrackingNumber: so.TrackingNumber,
			Carrier:        so.Carrier,
			ItemCount:      so.ItemCount,
			PaidAt:         so.PaidAt,
			ShippedAt:      so.ShippedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// eligibilityResponse is the wire form of a return eligibility verdict.
type eligibilityResponse struct {
	Eligible       bool       `json:"eligible"`
	Reason         string     `json:"reason,omitempty"`
	WindowClosesAt *time.Time `json:"windowClosesAt,omitempty"`
}

// CheckReturnEligibility handles GET /api/v1/suborders/:subOrderId/return-eligibility.
// The requesting buyer is identified by the buyerId query parameter.
func (s *Server) CheckReturnEligibility(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderId"))
	if err != nil {
		return respondError(ctx, err)
	}
	buyerID, err := kernel.UUIDFromString(ctx.QueryParam("buyerId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewCheckReturnEligibilityQuery(buyerID, subOrderID, s.returnWindowDays)
	if err != nil {
		return respondError(ctx, err)
	}

	verdict, err := s.checkReturnEligibility.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, eligibilityResponse{
		Eligible:       verdict.Eligible,
		Reason:         verdict.Reason,
		WindowClosesAt: verdict.WindowClosesAt,
	})
}

// historyEntryResponse is the wire form of one status history entry.
type historyEntryResponse struct {
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	Carrier        string    `json:"carrier,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
}

// GetSubOrderHistory handles GET /api/v1/suborders/:subOrderId/history.
func (s *Server) GetSubOrderHistory(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetSubOrderHistoryQuery(subOrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getSubOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]historyEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = historyEntryResponse{
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			TrackingNumber: entry.TrackingNumber,
			Carrier:        entry.Carrier,
			Notes:          entry.Notes,
			ChangedAt:      entry.ChangedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ExportOrdersCSV handles GET /api/v1/orders/export.
// from and to are RFC 3339 timestamps bounding a half-open interval.
func (s *Server) ExportOrdersCSV(ctx echo.Context) error {
	from, err := timeQueryParam(ctx, "from")
	if err != nil {
		return respondError(ctx, err)
	}
	to, err := timeQueryParam(ctx, "to")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewExportOrdersCSVQuery(from, to)
	if err != nil {
		return respondError(ctx, err)
	}

	var buf bytes.Buffer
	if _, err = s.exportOrdersCSV.Handle(ctx.Request().Context(), query, &buf); err != nil {
		return respondError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

package http

import (
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/domain/services"
)

// addressPayload is the wire form of a delivery address.
type addressPayload struct {
	FullName   string `json:"fullName" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone"`
}

// orderLinePayload is one purchase line of an order placement request.
type orderLinePayload struct {
	ProductID   string `json:"productId" validate:"required,uuid"`
	ProductName string `json:"productName" validate:"required"`
	UnitPrice   string `json:"unitPrice" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	StoreID     string `json:"storeId" validate:"required,uuid"`
	StoreName   string `json:"storeName" validate:"required"`
}

type placeOrderRequest struct {
	OrderID              string             `json:"orderId" validate:"required,uuid"`
	BuyerID              string             `json:"buyerId" validate:"required,uuid"`
	PaymentTransactionID string             `json:"paymentTransactionId" validate:"required"`
	ShippingTotal        string             `json:"shippingTotal" validate:"required"`
	Address              addressPayload     `json:"address" validate:"required"`
	Lines                []orderLinePayload `json:"lines" validate:"required,min=1,dive"`
}

func (r placeOrderRequest) toCommand() (commands.PlaceOrderCommand, error) {
	orderID, err := kernel.UUIDFromString(r.OrderID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	buyerID, err := kernel.UUIDFromString(r.BuyerID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	shippingTotal, err := kernel.NewMoneyFromString(r.ShippingTotal)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	address, err := kernel.NewAddress(
		r.Address.FullName, r.Address.Line1, r.Address.Line2, r.Address.City,
		r.Address.State, r.Address.PostalCode, r.Address.Country, r.Address.Phone)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	lines := make([]services.OrderLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		storeID, lineErr := kernel.UUIDFromString(line.StoreID)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		unitPrice, lineErr := kernel.NewMoneyFromString(line.UnitPrice)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}

		lines = append(lines, services.OrderLine{
			ProductID:   productID,
			ProductName: line.ProductName,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			StoreID:     storeID,
			StoreName:   line.StoreName,
		})
	}

	return commands.NewPlaceOrderCommand(
		orderID, buyerID, r.PaymentTransactionID, address, shippingTotal, lines)
}

type applyPaymentOutcomeRequest struct {
	Succeeded bool `json:"succeeded"`
}

type updateSubOrderStatusRequest struct {
	StoreID        string `json:"storeId" validate:"required,uuid"`
	Status         string `json:"status" validate:"required"`
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
	Notes          string `json:"notes"`
}

func (r updateSubOrderStatusRequest) toCommand(subOrderID kernel.UUID) (commands.UpdateSubOrderStatusCommand, error) {
	storeID, err := kernel.UUIDFromString(r.StoreID)
	if err != nil {
		return commands.UpdateSubOrderStatusCommand{}, err
	}
	target, err := order.SubOrderStatusFromString(r.Status)
	if err != nil {
		return commands.UpdateSubOrderStatusCommand{}, err
	}

	return commands.NewUpdateSubOrderStatusCommand(
		subOrderID, storeID, target, r.TrackingNumber, r.Carrier, r.Notes)
}

type itemStatusUpdatePayload struct {
	ItemID string `json:"itemId" validate:"required,uuid"`
	Status string `json:"status" validate:"required"`
}

type updateItemStatusesRequest struct {
	StoreID string                    `json:"storeId" validate:"required,uuid"`
	Updates []itemStatusUpdatePayload `json:"updates" validate:"required,min=1,dive"`
}

func (r updateItemStatusesRequest) toCommand(subOrderID kernel.UUID) (commands.UpdateItemStatusesCommand, error) {
	storeID, err := kernel.UUIDFromString(r.StoreID)
	if err != nil {
		return commands.UpdateItemStatusesCommand{}, err
	}

	updates := make([]commands.ItemStatusUpdate, 0, len(r.Updates))
	for _, update := range r.Updates {
		itemID, updateErr := kernel.UUIDFromString(update.ItemID)
		if updateErr != nil {
			return commands.UpdateItemStatusesCommand{}, updateErr
		}
		target, updateErr := order.ItemStatusFromString(update.Status)
		if updateErr != nil {
			return commands.UpdateItemStatusesCommand{}, updateErr
		}

		updates = append(updates, commands.ItemStatusUpdate{ItemID: itemID, Target: target})
	}

	return commands.NewUpdateItemStatusesCommand(subOrderID, storeID, updates)
}

type caseItemPayload struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type createReturnCaseRequest struct {
	CaseID     string            `json:"caseId" validate:"required,uuid"`
	SubOrderID string            `json:"subOrderId" validate:"required,uuid"`
	BuyerID    string            `json:"buyerId" validate:"required,uuid"`
	CaseType   string            `json:"caseType" validate:"required"`
	Reason     string            `json:"reason" validate:"required"`
	Items      []caseItemPayload `json:"items" validate:"omitempty,dive"`
}

func (r createReturnCaseRequest) toCommand() (commands.CreateReturnCaseCommand, error) {
	caseID, err := kernel.UUIDFromString(r.CaseID)
	if err != nil {
		return commands.CreateReturnCaseCommand{}, err
	}
	subOrderID, err := kernel.UUIDFromString(r.SubOrderID)
	if err != nil {
		return commands.CreateReturnCaseCommand{}, err
	}
	buyerID, err := kernel.UUIDFromString(r.BuyerID)
	if err != nil {
		return commands.CreateReturnCaseCommand{}, err
	}
	caseType, err := returncase.CaseTypeFromString(r.CaseType)
	if err != nil {
		return commands.CreateReturnCaseCommand{}, err
	}

	items := make([]commands.CaseItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		itemID, itemErr := kernel.UUIDFromString(item.ItemID)
		if itemErr != nil {
			return commands.CreateReturnCaseCommand{}, itemErr
		}
		items = append(items, commands.CaseItemInput{ItemID: itemID, Quantity: item.Quantity})
	}

	return commands.NewCreateReturnCaseCommand(caseID, subOrderID, buyerID, caseType, r.Reason, items)
}

type updateCaseStatusRequest struct {
	StoreID     string `json:"storeId" validate:"required,uuid"`
	Status      string `json:"status" validate:"required"`
	SellerNotes string `json:"sellerNotes"`
}

func (r updateCaseStatusRequest) toCommand(caseID kernel.UUID) (commands.UpdateCaseStatusCommand, error) {
	storeID, err := kernel.UUIDFromString(r.StoreID)
	if err != nil {
		return commands.UpdateCaseStatusCommand{}, err
	}
	target, err := returncase.StatusFromString(r.Status)
	if err != nil {
		return commands.UpdateCaseStatusCommand{}, err
	}

	return commands.NewUpdateCaseStatusCommand(caseID, storeID, target, r.SellerNotes)
}

type resolveCaseRequest struct {
	StoreID          string `json:"storeId" validate:"required,uuid"`
	Resolution       string `json:"resolution" validate:"required"`
	ResolutionReason string `json:"resolutionReason"`
	RefundID         string `json:"refundId" validate:"omitempty,uuid"`
	RefundAmount     string `json:"refundAmount"`
}

func (r resolveCaseRequest) toCommand(caseID kernel.UUID) (commands.ResolveCaseCommand, error) {
	storeID, err := kernel.UUIDFromString(r.StoreID)
	if err != nil {
		return commands.ResolveCaseCommand{}, err
	}
	resolution, err := returncase.ResolutionTypeFromString(r.Resolution)
	if err != nil {
		return commands.ResolveCaseCommand{}, err
	}

	var refundID *kernel.UUID
	if r.RefundID != "" {
		id, idErr := kernel.UUIDFromString(r.RefundID)
		if idErr != nil {
			return commands.ResolveCaseCommand{}, idErr
		}
		refundID = &id
	}

	var refundAmount *kernel.Money
	if r.RefundAmount != "" {
		amount, amountErr := kernel.NewMoneyFromString(r.RefundAmount)
		if amountErr != nil {
			return commands.ResolveCaseCommand{}, amountErr
		}
		refundAmount = &amount
	}

	return commands.NewResolveCaseCommand(
		caseID, storeID, resolution, r.ResolutionReason, refundID, refundAmount)
}

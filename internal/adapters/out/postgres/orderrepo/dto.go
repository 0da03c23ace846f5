// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and for sub-orders addressed directly by fulfillment workflows.
package orderrepo

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Sub-orders and items are separate tables loaded through GORM associations.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID              uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber          string    `gorm:"uniqueIndex"`
	PaymentTransactionID string
	ItemsSubtotal        decimal.Decimal `gorm:"type:numeric(12,2)"`
	ShippingTotal        decimal.Decimal `gorm:"type:numeric(12,2)"`
	GrandTotal           decimal.Decimal `gorm:"type:numeric(12,2)"`
	Address              AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Status               int             `gorm:"index"`
	CreatedAt            time.Time
	PaidAt               *time.Time
	FailedAt             *time.Time
	RefundedAt           *time.Time
	Version              int
	SubOrders            []SubOrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// SubOrderDTO represents the database structure for persisting seller
// sub-orders.
type SubOrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	StoreID        uuid.UUID `gorm:"type:uuid;index"`
	StoreName      string
	Seq            int
	SubOrderNumber string          `gorm:"uniqueIndex"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Shipping       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status         int             `gorm:"index"`
	Carrier        string
	TrackingNumber string
	PaidAt         *time.Time
	PreparingAt    *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
	FailedAt       *time.Time
	Version        int
	Items          []SubOrderItemDTO `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for sub-order entities.
func (SubOrderDTO) TableName() string {
	return "sub_orders"
}

// SubOrderItemDTO represents the database structure for persisting sub-order
// items.
type SubOrderItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubOrderID  uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	ProductName string
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity    int
	Status      int
	PreparingAt *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for item entities.
func (SubOrderItemDTO) TableName() string {
	return "sub_order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	subOrders := make([]SubOrderDTO, 0, len(aggregate.SubOrders()))
	for _, subOrder := range aggregate.SubOrders() {
		subOrders = append(subOrders, subOrderFromDomain(subOrder))
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		BuyerID:              aggregate.BuyerID().Bytes(),
		OrderNumber:          aggregate.OrderNumber(),
		PaymentTransactionID: aggregate.PaymentTransactionID(),
		ItemsSubtotal:        aggregate.ItemsSubtotal().Decimal(),
		ShippingTotal:        aggregate.ShippingTotal().Decimal(),
		GrandTotal:           aggregate.GrandTotal().Decimal(),
		Address:              addressFromDomain(aggregate.Address()),
		Status:               int(aggregate.Status()),
		CreatedAt:            aggregate.CreatedAt(),
		PaidAt:               aggregate.PaidAt(),
		FailedAt:             aggregate.FailedAt(),
		RefundedAt:           aggregate.RefundedAt(),
		Version:              aggregate.Version(),
		SubOrders:            subOrders,
	}
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		FullName:   address.FullName(),
		Line1:      address.Line1(),
		Line2:      address.Line2(),
		City:       address.City(),
		State:      address.State(),
		PostalCode: address.PostalCode(),
		Country:    address.Country(),
		Phone:      address.Phone(),
	}
}

func subOrderFromDomain(subOrder *order.SellerSubOrder) SubOrderDTO {
	items := make([]SubOrderItemDTO, 0, len(subOrder.Items()))
	for _, item := range subOrder.Items() {
		items = append(items, itemFromDomain(subOrder.ID(), item))
	}

	return SubOrderDTO{
		ID:             subOrder.ID().Bytes(),
		OrderID:        subOrder.OrderID().Bytes(),
		StoreID:        subOrder.StoreID().Bytes(),
		StoreName:      subOrder.StoreName(),
		Seq:            subOrder.Seq(),
		SubOrderNumber: subOrder.SubOrderNumber(),
		Subtotal:       subOrder.Subtotal().Decimal(),
		Shipping:       subOrder.Shipping().Decimal(),
		Total:          subOrder.Total().Decimal(),
		Status:         int(subOrder.Status()),
		Carrier:        subOrder.Carrier(),
		TrackingNumber: subOrder.TrackingNumber(),
		PaidAt:         subOrder.PaidAt(),
		PreparingAt:    subOrder.PreparingAt(),
		ShippedAt:      subOrder.ShippedAt(),
		DeliveredAt:    subOrder.DeliveredAt(),
		CancelledAt:    subOrder.CancelledAt(),
		RefundedAt:     subOrder.RefundedAt(),
		FailedAt:       subOrder.FailedAt(),
		Version:        subOrder.Version(),
		Items:          items,
	}
}

func itemFromDomain(subOrderID kernel.UUID, item *order.SubOrderItem) SubOrderItemDTO {
	return SubOrderItemDTO{
		ID:          item.ID().Bytes(),
		SubOrderID:  subOrderID.Bytes(),
		ProductID:   item.ProductID().Bytes(),
		ProductName: item.ProductName(),
		UnitPrice:   item.UnitPrice().Decimal(),
		Quantity:    item.Quantity(),
		Status:      int(item.Status()),
		PreparingAt: item.PreparingAt(),
		ShippedAt:   item.ShippedAt(),
		DeliveredAt: item.DeliveredAt(),
		CancelledAt: item.CancelledAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Address.FullName, dto.Address.Line1, dto.Address.Line2, dto.Address.City,
		dto.Address.State, dto.Address.PostalCode, dto.Address.Country, dto.Address.Phone)
	if err != nil {
		return nil, err
	}

	shippingTotal, err := kernel.NewMoney(dto.ShippingTotal)
	if err != nil {
		return nil, err
	}

	subOrders := make([]*order.SellerSubOrder, 0, len(dto.SubOrders))
	for _, subDTO := range dto.SubOrders {
		subOrder, subErr := subOrderToDomain(subDTO)
		if subErr != nil {
			return nil, subErr
		}
		subOrders = append(subOrders, subOrder)
	}

	return order.RestoreOrder(id, buyerID, dto.PaymentTransactionID, address,
		shippingTotal, subOrders, order.Status(dto.Status),
		dto.CreatedAt, dto.PaidAt, dto.FailedAt, dto.RefundedAt, dto.Version)
}

func subOrderToDomain(dto SubOrderDTO) (*order.SellerSubOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	shipping, err := kernel.NewMoney(dto.Shipping)
	if err != nil {
		return nil, err
	}

	items := make([]*order.SubOrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	// The sub-order number is the parent order number plus "-<seq>".
	orderNumber := strings.TrimSuffix(dto.SubOrderNumber, fmt.Sprintf("-%d", dto.Seq))

	return order.RestoreSellerSubOrder(id, orderID, storeID, dto.StoreName,
		dto.Seq, orderNumber, shipping, items,
		order.SubOrderStatus(dto.Status), dto.Carrier, dto.TrackingNumber,
		dto.PaidAt, dto.PreparingAt, dto.ShippedAt, dto.DeliveredAt,
		dto.CancelledAt, dto.RefundedAt, dto.FailedAt, dto.Version)
}

func itemToDomain(dto SubOrderItemDTO) (*order.SubOrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreSubOrderItem(id, productID, dto.ProductName, unitPrice,
		dto.Quantity, order.ItemStatus(dto.Status),
		dto.PreparingAt, dto.ShippedAt, dto.DeliveredAt, dto.CancelledAt)
}

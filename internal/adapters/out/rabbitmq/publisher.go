package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "marketplace.orders"

	routingKeyOrderPlaced           = "order.placed"
	routingKeySubOrderStatusChanged = "suborder.status.changed"
	routingKeyCaseResolved          = "case.resolved"
)

// OrderEventPublisher implements ports.OrderEventPublisher on top of a durable
// topic exchange. Messages are persistent JSON documents keyed by event type.
type OrderEventPublisher struct {
	channel *amqp.Channel
}

// NewOrderEventPublisher opens a dedicated channel and declares the exchange.
func NewOrderEventPublisher(conn *Connection) (*OrderEventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, errs.NewCollaboratorError("event stream", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		return nil, errs.NewCollaboratorError("event stream", err)
	}

	return &OrderEventPublisher{channel: channel}, nil
}

// orderPlacedMessage announces a newly placed order.
type orderPlacedMessage struct {
	EventType   string `json:"eventType"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	BuyerID     string `json:"buyerId"`
	GrandTotal  string `json:"grandTotal"`
	SubOrders   int    `json:"subOrders"`
	Timestamp   string `json:"timestamp"`
}

// subOrderStatusChangedMessage announces a sub-order status change.
type subOrderStatusChangedMessage struct {
	EventType      string `json:"eventType"`
	SubOrderID     string `json:"subOrderId"`
	SubOrderNumber string `json:"subOrderNumber"`
	StoreID        string `json:"storeId"`
	FromStatus     string `json:"fromStatus"`
	ToStatus       string `json:"toStatus"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// caseResolvedMessage announces a resolved return case.
type caseResolvedMessage struct {
	EventType  string `json:"eventType"`
	CaseID     string `json:"caseId"`
	CaseNumber string `json:"caseNumber"`
	SubOrderID string `json:"subOrderId"`
	Resolution string `json:"resolution"`
	Timestamp  string `json:"timestamp"`
}

// PublishOrderPlaced announces a newly placed order.
func (p *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, routingKeyOrderPlaced, orderPlacedMessage{
		EventType:   routingKeyOrderPlaced,
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
		BuyerID:     aggregate.BuyerID().String(),
		GrandTotal:  aggregate.GrandTotal().String(),
		SubOrders:   len(aggregate.SubOrders()),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishSubOrderStatusChanged announces a sub-order status change.
func (p *OrderEventPublisher) PublishSubOrderStatusChanged(
	ctx context.Context,
	subOrder *order.SellerSubOrder,
	previous order.SubOrderStatus,
) error {
	return p.publish(ctx, routingKeySubOrderStatusChanged, subOrderStatusChangedMessage{
		EventType:      routingKeySubOrderStatusChanged,
		SubOrderID:     subOrder.ID().String(),
		SubOrderNumber: subOrder.SubOrderNumber(),
		StoreID:        subOrder.StoreID().String(),
		FromStatus:     previous.String(),
		ToStatus:       subOrder.Status().String(),
		TrackingNumber: subOrder.TrackingNumber(),
		Carrier:        subOrder.Carrier(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

// PublishCaseResolved announces a resolved return case.
func (p *OrderEventPublisher) PublishCaseResolved(ctx context.Context, aggregate *returncase.ReturnRequest) error {
	return p.publish(ctx, routingKeyCaseResolved, caseResolvedMessage{
		EventType:  routingKeyCaseResolved,
		CaseID:     aggregate.ID().String(),
		CaseNumber: aggregate.CaseNumber(),
		SubOrderID: aggregate.SubOrderID().String(),
		Resolution: aggregate.ResolutionType().String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return errs.NewCollaboratorError("event stream", err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return errs.NewCollaboratorError("event stream", err)
	}

	return nil
}

// Close closes the publisher's channel.
func (p *OrderEventPublisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}

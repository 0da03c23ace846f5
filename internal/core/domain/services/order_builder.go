package services

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// OrderLine is the raw purchase input the builder groups into sub-orders.
// Lines carry the store identity alongside the product so the builder does
// not need a catalog lookup.
type OrderLine struct {
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   kernel.Money
	Quantity    int
	StoreID     kernel.UUID
	StoreName   string
}

// OrderAggregateBuilder is a domain service that assembles a multi-seller
// Order aggregate from flat purchase lines.
//
// Key responsibilities:
//   - Grouping lines into one sub-order per store, preserving the order in
//     which stores first appear in the input
//   - Splitting the checkout shipping total evenly across sub-orders, with
//     any indivisible remainder carried by the first sub-order
//   - Creating the whole aggregate atomically: either every line is placed
//     or the build fails with no partial result
//
// Example usage:
//
//	builder := services.NewOrderAggregateBuilder()
//	lines := []services.OrderLine{
//	    {ProductID: p1, ProductName: "Mug", UnitPrice: price, Quantity: 2, StoreID: storeA, StoreName: "Store A"},
//	    {ProductID: p2, ProductName: "Lamp", UnitPrice: price, Quantity: 1, StoreID: storeB, StoreName: "Store B"},
//	}
//
//	ord, err := builder.Build(kernel.NewUUID(), buyerID, "txn_3OqXz2", address, shippingTotal, lines, time.Now())
//	if err != nil {
//	    // Handle invalid input; nothing was created
//	    return
//	}
//	// ord holds one sub-order per store, each already priced
type OrderAggregateBuilder struct{}

// NewOrderAggregateBuilder creates a new OrderAggregateBuilder instance.
func NewOrderAggregateBuilder() OrderAggregateBuilder {
	return OrderAggregateBuilder{}
}

// Build assembles the Order aggregate from the given lines.
//
// The order number, sub-order identities and numbers are all generated here
// from the supplied order identity. The returned order is in status New with
// all sub-orders in status New; payment outcome is applied later by the
// payment workflow.
func (b OrderAggregateBuilder) Build(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	paymentTransactionID string,
	address kernel.Address,
	shippingTotal kernel.Money,
	lines []OrderLine,
	createdAt time.Time,
) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("order lines")
	}

	groups, storeOrder, err := b.groupByStore(lines)
	if err != nil {
		return nil, err
	}

	shares, err := shippingTotal.SplitEvenly(len(storeOrder))
	if err != nil {
		return nil, err
	}

	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	orderNumber := order.NumberFromID(orderID)

	subOrders := make([]*order.SellerSubOrder, 0, len(storeOrder))
	for i, storeID := range storeOrder {
		group := groups[storeID]

		items := make([]*order.SubOrderItem, 0, len(group))
		for _, line := range group {
			item, err := order.NewSubOrderItem(
				kernel.NewUUID(), line.ProductID, line.ProductName, line.UnitPrice, line.Quantity)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		subOrder, err := order.NewSellerSubOrder(
			kernel.NewUUID(), orderID, storeID, group[0].StoreName,
			i+1, orderNumber, shares[i], items)
		if err != nil {
			return nil, err
		}
		subOrders = append(subOrders, subOrder)
	}

	return order.NewOrder(orderID, buyerID, paymentTransactionID, address,
		shippingTotal, subOrders, createdAt)
}

// groupByStore buckets lines per store, keeping the first-seen store order so
// sub-order sequence numbers are deterministic for a given input.
func (b OrderAggregateBuilder) groupByStore(lines []OrderLine) (map[kernel.UUID][]OrderLine, []kernel.UUID, error) {
	groups := make(map[kernel.UUID][]OrderLine)
	storeOrder := make([]kernel.UUID, 0)

	for _, line := range lines {
		if err := line.StoreID.Validate(); err != nil {
			return nil, nil, err
		}
		if line.StoreName == "" {
			return nil, nil, errs.NewValueIsRequiredError("store name")
		}

		if _, seen := groups[line.StoreID]; !seen {
			storeOrder = append(storeOrder, line.StoreID)
		}
		groups[line.StoreID] = append(groups[line.StoreID], line)
	}

	return groups, storeOrder, nil
}

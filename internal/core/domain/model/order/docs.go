// Package order provides the domain model for marketplace order fulfillment.
// It implements the Order aggregate root, its per-seller SellerSubOrder
// children, and the SubOrderItem lines, each with its own status state
// machine.
//
// The package includes:
//   - Order: the aggregate root owning totals, the address snapshot, and sub-orders
//   - SellerSubOrder: the portion of an order fulfilled by a single seller
//   - SubOrderItem: one product line inside a sub-order
//   - Status, SubOrderStatus, ItemStatus: three independent transition tables
//
// Key business rules:
//   - Payment outcomes apply only to New orders and cascade to every sub-order
//   - Sub-order status moves through the seller transition table or is
//     re-derived from scratch from the item statuses after item updates
//   - Tracking number and carrier are recorded at the Shipped transition
//   - Monetary totals are always recomputed from the children at construction
//
// All state changes go through validated methods; entities are created via
// constructors and reconstructed from persistence via Restore functions.
package order

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubOrderRepoFactory provides access to the sub-order repository within a transaction.
	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	// ReturnCaseRepoFactory provides access to the return case repository within a transaction.
	ReturnCaseRepoFactory interface {
		ReturnCaseRepository() ports.ReturnCaseRepository
	}

	// ShippingHistoryRepoFactory provides access to the status history repository within a transaction.
	ShippingHistoryRepoFactory interface {
		ShippingHistoryRepository() ports.ShippingHistoryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FulfillmentUoW manages transactions for seller fulfillment operations.
	// A transition to Refunded is applied through the parent order so the
	// refund can cascade to the order itself.
	FulfillmentUoW interface {
		TxManager
		SubOrderRepoFactory
		OrderRepoFactory
		ShippingHistoryRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// CaseUoW manages transactions for return case intake and review.
	// Case creation reads the sub-order and its parent order to check
	// eligibility and ownership.
	CaseUoW interface {
		TxManager
		ReturnCaseRepoFactory
		SubOrderRepoFactory
		OrderRepoFactory
	}

	// CaseUoWFactory creates new case unit of work instances.
	CaseUoWFactory interface {
		Create() CaseUoW
	}

	// ResolutionUoW manages transactions for case resolution.
	// Resolution writes the case, and on a full refund also the order
	// aggregate (for the sub-order refund cascade) and its history entry.
	ResolutionUoW interface {
		TxManager
		ReturnCaseRepoFactory
		OrderRepoFactory
		ShippingHistoryRepoFactory
	}

	// ResolutionUoWFactory creates new resolution unit of work instances.
	ResolutionUoWFactory interface {
		Create() ResolutionUoW
	}
)

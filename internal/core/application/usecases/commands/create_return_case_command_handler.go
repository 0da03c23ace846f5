package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateReturnCaseCommandHandler handles return case intake.
// Enforces every eligibility rule before the case is persisted:
//   - the sub-order is Delivered and the buyer owns the parent order
//   - the return window has not expired
//   - requested quantities do not exceed the purchased quantities
//   - none of the items is covered by another open case
//
// Example:
//
//	handler := NewCreateReturnCaseCommandHandler(uowFactory, clock, 14)
//	cmd, _ := NewCreateReturnCaseCommand(caseID, subOrderID, buyerID, returncase.TypeReturn, "damaged", items)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrBusinessRuleViolated) {
//	    // Not eligible: window expired, not delivered, or duplicate open case
//	}
type CreateReturnCaseCommandHandler struct {
	uowFactory       CaseUoWFactory
	clock            ports.Clock
	returnWindowDays int
}

// NewCreateReturnCaseCommandHandler creates a handler for return case intake.
// returnWindowDays is the number of days after delivery during which a case
// may still be opened.
func NewCreateReturnCaseCommandHandler(
	uowFactory CaseUoWFactory,
	clock ports.Clock,
	returnWindowDays int,
) CreateReturnCaseCommandHandler {
	return CreateReturnCaseCommandHandler{
		uowFactory:       uowFactory,
		clock:            clock,
		returnWindowDays: returnWindowDays,
	}
}

// Handle processes the case creation command.
func (h CreateReturnCaseCommandHandler) Handle(ctx context.Context, cmd CreateReturnCaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subOrder, err := uow.SubOrderRepository().Get(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	parent, err := uow.OrderRepository().Get(ctx, subOrder.OrderID())
	if err != nil {
		return err
	}

	if !parent.IsOwnedByBuyer(cmd.BuyerID()) {
		return errs.NewNotAuthorizedError(cmd.BuyerID().String(), subOrder.SubOrderNumber())
	}

	if err = h.checkEligibility(subOrder, now); err != nil {
		return err
	}

	caseItems, itemIDs, err := h.buildCaseItems(subOrder, cmd.Items())
	if err != nil {
		return err
	}

	caseRepo := uow.ReturnCaseRepository()

	openCases, err := caseRepo.GetOpenByItemIDs(ctx, itemIDs)
	if err != nil {
		return err
	}
	if len(openCases) > 0 {
		return errs.NewBusinessRuleErrorWithCause(
			"an item can be covered by at most one open case",
			fmt.Errorf("case %s is still open", openCases[0].CaseNumber()),
		)
	}

	aggregate, err := returncase.NewReturnRequest(
		cmd.CaseID(), subOrder.ID(), cmd.BuyerID(), subOrder.StoreID(),
		cmd.CaseType(), cmd.Reason(), caseItems, now)
	if err != nil {
		return err
	}

	if err = caseRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateReturnCaseCommandHandler) checkEligibility(subOrder *order.SellerSubOrder, now time.Time) error {
	if subOrder.Status() != order.SubOrderDelivered {
		return errs.NewBusinessRuleErrorWithCause(
			"cases can only be opened against delivered sub-orders",
			fmt.Errorf("sub-order %s is %s", subOrder.SubOrderNumber(), subOrder.Status()),
		)
	}

	deadline := subOrder.DeliveredAt().AddDate(0, 0, h.returnWindowDays)
	if now.After(deadline) {
		return errs.NewBusinessRuleErrorWithCause(
			"the return window has expired",
			fmt.Errorf("delivered %s, window closed %s",
				subOrder.DeliveredAt().Format(time.RFC3339), deadline.Format(time.RFC3339)),
		)
	}

	return nil
}

func (h CreateReturnCaseCommandHandler) buildCaseItems(
	subOrder *order.SellerSubOrder,
	inputs []CaseItemInput,
) ([]returncase.CaseItem, []kernel.UUID, error) {
	// An empty selection covers every item with its full quantity.
	if len(inputs) == 0 {
		for _, item := range subOrder.Items() {
			inputs = append(inputs, CaseItemInput{ItemID: item.ID(), Quantity: item.Quantity()})
		}
	}

	caseItems := make([]returncase.CaseItem, 0, len(inputs))
	itemIDs := make([]kernel.UUID, 0, len(inputs))

	for _, input := range inputs {
		item, err := subOrder.Item(input.ItemID)
		if err != nil {
			return nil, nil, err
		}

		if input.Quantity > item.Quantity() {
			return nil, nil, errs.NewValueIsOutOfRangeError(
				"case item quantity", input.Quantity, 1, item.Quantity())
		}

		caseItem, err := returncase.NewCaseItem(input.ItemID, input.Quantity)
		if err != nil {
			return nil, nil, err
		}

		caseItems = append(caseItems, caseItem)
		itemIDs = append(itemIDs, input.ItemID)
	}

	return caseItems, itemIDs, nil
}

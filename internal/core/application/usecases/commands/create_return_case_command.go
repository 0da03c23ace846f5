package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateReturnCaseCommandIsNotConstructed = errors.New(
	"CreateReturnCaseCommand must be created via NewCreateReturnCaseCommand constructor",
)

// CaseItemInput names one sub-order item and the quantity the buyer wants to
// return or dispute.
type CaseItemInput struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateReturnCaseCommand represents a buyer's request to open a return,
// exchange or dispute case against a delivered sub-order.
type CreateReturnCaseCommand struct { //nolint:recvcheck //using for validation
	caseID     kernel.UUID
	subOrderID kernel.UUID
	buyerID    kernel.UUID
	caseType   returncase.CaseType
	reason     string
	items      []CaseItemInput

	guard guard.ConstructorGuard
}

// NewCreateReturnCaseCommand creates a command to open a return case.
// items may be empty; the handler then covers all of the sub-order's items.
// Eligibility against the sub-order (delivered, within the return window,
// quantities, no open case per item) is checked by the handler.
func NewCreateReturnCaseCommand(
	caseID kernel.UUID,
	subOrderID kernel.UUID,
	buyerID kernel.UUID,
	caseType returncase.CaseType,
	reason string,
	items []CaseItemInput,
) (CreateReturnCaseCommand, error) {
	cmd := CreateReturnCaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caseID.Validate(),
		subOrderID.Validate(),
		buyerID.Validate(),
		caseType.Validate(),
		cmd.setReason(reason),
		cmd.setItems(items),
	); err != nil {
		return CreateReturnCaseCommand{}, err
	}

	cmd.caseID = caseID
	cmd.subOrderID = subOrderID
	cmd.buyerID = buyerID
	cmd.caseType = caseType
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnCaseCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnCaseCommandIsNotConstructed)
}

// CaseID returns the identity for the new case.
func (c CreateReturnCaseCommand) CaseID() kernel.UUID {
	return c.caseID
}

// SubOrderID returns the sub-order the case is opened against.
func (c CreateReturnCaseCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

// BuyerID returns the buyer opening the case.
func (c CreateReturnCaseCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// CaseType returns what the buyer is asking for.
func (c CreateReturnCaseCommand) CaseType() returncase.CaseType {
	return c.caseType
}

// Reason returns the buyer's reason text.
func (c CreateReturnCaseCommand) Reason() string {
	return c.reason
}

// Items returns the item references with quantities. An empty selection
// means the case covers every item of the sub-order.
func (c CreateReturnCaseCommand) Items() []CaseItemInput {
	return c.items
}

func (c *CreateReturnCaseCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("case reason")
	}

	c.reason = reason
	return nil
}

func (c *CreateReturnCaseCommand) setItems(items []CaseItemInput) error {
	for _, item := range items {
		if err := item.ItemID.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

package returncase

import (
	"marketplace/internal/pkg/errs"
)

// CaseType classifies what the buyer is asking for.
type CaseType int

const (
	// TypeUnknown represents an invalid or undefined case type.
	TypeUnknown CaseType = iota

	// TypeReturn asks to send goods back.
	TypeReturn

	// TypeExchange asks to swap goods for replacements.
	TypeExchange

	// TypeDispute contests the delivered goods without returning them.
	TypeDispute
)

// getCaseTypeStrings returns a map of CaseType values to their string representations.
func getCaseTypeStrings() map[CaseType]string {
	return map[CaseType]string{
		TypeUnknown:  "Unknown",
		TypeReturn:   "Return",
		TypeExchange: "Exchange",
		TypeDispute:  "Dispute",
	}
}

// String returns the human-readable name of the case type.
func (t CaseType) String() string {
	if str, ok := getCaseTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the CaseType is one of the defined types.
func (t CaseType) Validate() error {
	switch t {
	case TypeReturn, TypeExchange, TypeDispute:
		return nil
	default:
		return errs.NewValueIsInvalidError("case type is invalid")
	}
}

// CaseTypeFromString parses a case type name as used on the wire.
func CaseTypeFromString(name string) (CaseType, error) {
	for caseType, str := range getCaseTypeStrings() {
		if str == name && caseType != TypeUnknown {
			return caseType, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidError("case type is invalid")
}

// ResolutionType records how a completed case was settled. It is set only at
// resolution time.
type ResolutionType int

const (
	// ResolutionUnknown represents an invalid or undefined resolution.
	ResolutionUnknown ResolutionType = iota

	// ResolutionNoRefund closes the case without money movement.
	ResolutionNoRefund

	// ResolutionFullRefund refunds the whole sub-order.
	ResolutionFullRefund

	// ResolutionPartialRefund refunds part of the sub-order's amount.
	ResolutionPartialRefund
)

// getResolutionTypeStrings returns a map of ResolutionType values to their
// string representations.
func getResolutionTypeStrings() map[ResolutionType]string {
	return map[ResolutionType]string{
		ResolutionUnknown:       "Unknown",
		ResolutionNoRefund:      "NoRefund",
		ResolutionFullRefund:    "FullRefund",
		ResolutionPartialRefund: "PartialRefund",
	}
}

// String returns the human-readable name of the resolution type.
func (r ResolutionType) String() string {
	if str, ok := getResolutionTypeStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the ResolutionType is one of the defined resolutions.
func (r ResolutionType) Validate() error {
	switch r {
	case ResolutionNoRefund, ResolutionFullRefund, ResolutionPartialRefund:
		return nil
	default:
		return errs.NewValueIsInvalidError("resolution type is invalid")
	}
}

// ResolutionTypeFromString parses a resolution type name as used on the wire.
func ResolutionTypeFromString(name string) (ResolutionType, error) {
	for resolution, str := range getResolutionTypeStrings() {
		if str == name && resolution != ResolutionUnknown {
			return resolution, nil
		}
	}
	return ResolutionUnknown, errs.NewValueIsInvalidError("resolution type is invalid")
}

// ImpliesSubOrderRefund reports whether this resolution marks the underlying
// sub-order as refunded. Only a full refund does; a partial refund leaves the
// sub-order Delivered.
func (r ResolutionType) ImpliesSubOrderRefund() bool {
	return r == ResolutionFullRefund
}

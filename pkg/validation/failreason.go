package validation

import (
	"fmt"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
)

// LocalizableMessage is a stable message descriptor resolvable to localized
// text by the presentation layer.
type LocalizableMessage string

const (
	MsgOrderLegsHaveSameInstrument LocalizableMessage = "VALIDATION_FAILED_ORDER_LEGS_HAVE_SAME_INSTRUMENT"
	MsgCTORestricted               LocalizableMessage = "VALIDATION_FAILED_CTO_RESTRICTION"
	MsgTenderRestricted            LocalizableMessage = "VALIDATION_FAILED_TENDER_RESTRICTION"
	MsgNonResidentRestricted       LocalizableMessage = "VALIDATION_FAILED_NON_RESIDENT_RESTRICTION"
	MsgStockWatch                  LocalizableMessage = "VALIDATION_FAILED_STOCK_WATCH_RESTRICTION"
	MsgSymbolBlocked               LocalizableMessage = "VALIDATION_FAILED_SYMBOL_BLOCK_RESTRICTION"
)

// RuleFailReason is the user-facing result of a failed validation.
type RuleFailReason struct {
	Rule          string
	Message       LocalizableMessage
	Action        restriction.ActionType
	ReasonClient  string
	ReasonAdmin   string
	LegIndex      int // -1 when not tied to a leg
	RestrictionID int64
}

// messageFor maps a violation kind to its message descriptor. The mapping is
// a static table over a closed set; an unmapped kind is a programming error
// and fails loudly rather than being skipped.
func messageFor(kind ViolationKind) LocalizableMessage {
	switch kind {
	case ViolationDuplicateLegInstrument:
		return MsgOrderLegsHaveSameInstrument
	case ViolationCTORestricted:
		return MsgCTORestricted
	case ViolationTenderRestricted:
		return MsgTenderRestricted
	case ViolationNonResidentRestricted:
		return MsgNonResidentRestricted
	case ViolationStockWatch:
		return MsgStockWatch
	case ViolationSymbolBlocked:
		return MsgSymbolBlocked
	}
	panic(fmt.Sprintf("validation: no localizable message for violation kind %q", kind))
}

func newFailReason(rule string, v *Violation) *RuleFailReason {
	return &RuleFailReason{
		Rule:          rule,
		Message:       messageFor(v.Kind),
		Action:        v.Action,
		ReasonClient:  v.ReasonClient,
		ReasonAdmin:   v.ReasonAdmin,
		LegIndex:      v.LegIndex,
		RestrictionID: v.RestrictionID,
	}
}

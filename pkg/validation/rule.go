package validation

import (
	"context"
	"time"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// ViolationKind identifies what a rule found. The set is closed; every kind
// must have a localizable message in failreason.go.
type ViolationKind string

const (
	ViolationDuplicateLegInstrument ViolationKind = "DUPLICATE_LEG_INSTRUMENT"
	ViolationCTORestricted          ViolationKind = "CTO_RESTRICTED"
	ViolationTenderRestricted       ViolationKind = "TENDER_RESTRICTED"
	ViolationNonResidentRestricted  ViolationKind = "NON_RESIDENT_RESTRICTED"
	ViolationStockWatch             ViolationKind = "STOCK_WATCH"
	ViolationSymbolBlocked          ViolationKind = "SYMBOL_BLOCKED"
)

// Violation is the internal outcome of a rule before it is mapped to a
// RuleFailReason. Structural violations always carry ActionRejection.
type Violation struct {
	Kind          ViolationKind
	Action        restriction.ActionType
	ReasonClient  string
	ReasonAdmin   string
	LegIndex      int // -1 when not tied to a leg
	RestrictionID int64
}

// Context carries the per-call restriction snapshot and evaluation instant.
// It is read-only for the duration of one validation call.
type Context struct {
	Catalog *restriction.Catalog
	At      time.Time
}

// NewContext builds a validation context; a zero instant defaults to now.
func NewContext(catalog *restriction.Catalog, at time.Time) *Context {
	if at.IsZero() {
		at = time.Now()
	}
	return &Context{Catalog: catalog, At: at}
}

// Input bundles everything a rule may inspect for one order.
type Input struct {
	Order   *model.Order
	Stage   model.ProcessingStage
	Account model.AccountContent
	Context *Context
}

// Rule is one validation check. Rules never mutate the input and never fail
// operationally; finding no violation is the normal outcome.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, in *Input) []*Violation
}

func kindForRestriction(t restriction.Type) ViolationKind {
	switch t {
	case restriction.TypeCTO:
		return ViolationCTORestricted
	case restriction.TypeTender:
		return ViolationTenderRestricted
	case restriction.TypeNonResident:
		return ViolationNonResidentRestricted
	case restriction.TypeStockWatch:
		return ViolationStockWatch
	case restriction.TypeSymbolBlock:
		return ViolationSymbolBlocked
	}
	// the restriction Type set is closed; reaching here is a defect
	panic("validation: no violation kind for restriction type " + string(t))
}

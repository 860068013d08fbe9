package restriction

import (
	"time"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// Violation is a candidate outcome produced when a restriction applies to an
// order. LegIndex is -1 when the restriction matched at order level.
type Violation struct {
	Restriction *TradingRestriction
	LegIndex    int
}

// Match decides whether a single restriction applies to an order. Absence of
// a match is the normal outcome, never an error.
//
// Quantity-threshold semantics per variant: CTO, STOCK_WATCH, NON_RESIDENT and
// SYMBOL_BLOCK treat [min, max] as a watch band: the order quantity must fall
// inside it for the restriction to apply. TENDER additionally requires the
// order quantity to exceed the tender quantity limit.
func Match(r *TradingRestriction, order *model.Order, account model.AccountContent, at time.Time) *Violation {
	if !r.ActiveAt(at) {
		return nil
	}
	if !r.appliesToAccount(order.AccountID) {
		return nil
	}
	if !r.sideMatches(order.Side) {
		return nil
	}

	switch r.Type {
	case TypeCTO, TypeStockWatch:
		return r.matchOrderScope(order)

	case TypeTender:
		if !order.Quantity.GreaterThan(r.TenderQuantityLimit) {
			return nil
		}
		return r.matchOrderScope(order)

	case TypeNonResident:
		if account == nil || !contains(r.Countries, account.Country()) {
			return nil
		}
		return r.matchOrderScope(order)

	case TypeSymbolBlock:
		return r.matchSymbolBlock(order)
	}

	return nil
}

// matchOrderScope applies the symbol/security filter at order level first,
// then against each leg instrument, and gates on the quantity band.
func (r *TradingRestriction) matchOrderScope(order *model.Order) *Violation {
	if !r.quantityInBand(order.Quantity) {
		return nil
	}
	if r.scopeMatches(order.Symbol, "") {
		return &Violation{Restriction: r, LegIndex: -1}
	}
	for i := range order.Legs {
		inst := order.Legs[i].Instrument
		if r.scopeMatches(inst.Symbol, inst.SecurityID) || r.scopeMatches(inst.Underlying, "") {
			return &Violation{Restriction: r, LegIndex: i}
		}
	}
	return nil
}

func (r *TradingRestriction) matchSymbolBlock(order *model.Order) *Violation {
	if len(r.Strategies) > 0 && order.StrategyType != "" && !containsStrategy(r.Strategies, order.StrategyType) {
		return nil
	}
	if len(r.AdminOrderTypes) > 0 && order.AdminOrderType != "" && !containsAdminType(r.AdminOrderTypes, order.AdminOrderType) {
		return nil
	}
	if !r.quantityInBand(order.Quantity) {
		return nil
	}

	for i := range order.Legs {
		leg := &order.Legs[i]
		inst := leg.Instrument
		if !r.scopeMatches(inst.Symbol, inst.SecurityID) && !r.scopeMatches(inst.Underlying, "") {
			continue
		}
		if !blockKindMatches(r.BlockInstrument, inst.Kind) {
			continue
		}
		if inst.IsOption() && !optionAllowed(r.Options, inst.Right) {
			continue
		}
		if r.RequiredPositionEffect != "" && leg.PositionEffect != r.RequiredPositionEffect {
			continue
		}
		return &Violation{Restriction: r, LegIndex: i}
	}
	return nil
}

func blockKindMatches(block BlockInstrumentType, kind instrument.Kind) bool {
	switch block {
	case BlockOptionOnly:
		return kind == instrument.KindOption
	case BlockStockOnly:
		return kind == instrument.KindStock
	default:
		return true
	}
}

func optionAllowed(filter OptionFilter, right instrument.Right) bool {
	switch filter {
	case OptionCall:
		return right == instrument.RightCall
	case OptionPut:
		return right == instrument.RightPut
	default:
		// CALL_AND_PUT or unset
		return true
	}
}

func containsStrategy(set []model.StrategyType, v model.StrategyType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsAdminType(set []model.AdminOrderType, v model.AdminOrderType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

package restriction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// Type is the closed set of restriction variants. Adding a variant requires
// updating the matcher dispatch and the fail-reason mapping.
type Type string

const (
	TypeCTO         Type = "CTO"
	TypeTender      Type = "TENDER"
	TypeNonResident Type = "NON_RESIDENT"
	TypeStockWatch  Type = "STOCK_WATCH"
	TypeSymbolBlock Type = "SYMBOL_BLOCK"
)

type ActionType string

const (
	ActionRejection ActionType = "REJECTION"
	ActionWarning   ActionType = "WARNING"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
	SideBoth Side = "BOTH"
)

type BlockInstrumentType string

const (
	BlockAll        BlockInstrumentType = "ALL"
	BlockOptionOnly BlockInstrumentType = "OPTION_ONLY"
	BlockStockOnly  BlockInstrumentType = "STOCK_ONLY"
)

// OptionFilter narrows a SYMBOL_BLOCK restriction to one option right.
type OptionFilter string

const (
	OptionCall       OptionFilter = "CALL"
	OptionPut        OptionFilter = "PUT"
	OptionCallAndPut OptionFilter = "CALL_AND_PUT"
)

// TradingRestriction is one compliance rule limiting trading in a
// symbol/account/side combination for a bounded time window. Instances are
// read-only once handed to a Catalog.
type TradingRestriction struct {
	ID          int64
	Type        Type
	Symbols     []string
	SecurityIDs []string
	Side        Side
	Accounts    []string // empty means all accounts

	// quantity watch band; zero max means unbounded above
	MinQuantity decimal.Decimal
	MaxQuantity decimal.Decimal

	Action       ActionType
	ReasonClient string
	ReasonAdmin  string

	EffectiveFrom  time.Time
	EffectiveUntil time.Time // zero means unbounded

	// SYMBOL_BLOCK only
	BlockInstrument        BlockInstrumentType
	Strategies             []model.StrategyType
	Options                OptionFilter
	AdminOrderTypes        []model.AdminOrderType
	RequiredPositionEffect model.PositionEffect // empty means any

	// NON_RESIDENT only
	Countries []string

	// TENDER only
	TenderQuantityLimit decimal.Decimal
}

// NewCTORestriction builds a closing-then-opening restriction.
func NewCTORestriction(id int64, symbols, securityIDs []string, side Side, action ActionType, reasonClient, reasonAdmin string, minQty, maxQty decimal.Decimal) (*TradingRestriction, error) {
	r := &TradingRestriction{
		ID:           id,
		Type:         TypeCTO,
		Symbols:      symbols,
		SecurityIDs:  securityIDs,
		Side:         side,
		Action:       action,
		ReasonClient: reasonClient,
		ReasonAdmin:  reasonAdmin,
		MinQuantity:  minQty,
		MaxQuantity:  maxQty,
	}
	return r, r.Validate()
}

// NewTenderRestriction builds a tender restriction that triggers only above
// the tender quantity limit.
func NewTenderRestriction(id int64, symbols, securityIDs, accounts []string, tenderLimit decimal.Decimal, action ActionType, reasonClient, reasonAdmin string, minQty, maxQty decimal.Decimal) (*TradingRestriction, error) {
	r := &TradingRestriction{
		ID:                  id,
		Type:                TypeTender,
		Symbols:             symbols,
		SecurityIDs:         securityIDs,
		Accounts:            accounts,
		Side:                SideBoth,
		TenderQuantityLimit: tenderLimit,
		Action:              action,
		ReasonClient:        reasonClient,
		ReasonAdmin:         reasonAdmin,
		MinQuantity:         minQty,
		MaxQuantity:         maxQty,
	}
	return r, r.Validate()
}

// NewNonResidentRestriction builds a restriction gated on the account country.
func NewNonResidentRestriction(id int64, symbols, securityIDs []string, side Side, countries []string, action ActionType, reasonClient, reasonAdmin string, minQty, maxQty decimal.Decimal) (*TradingRestriction, error) {
	r := &TradingRestriction{
		ID:           id,
		Type:         TypeNonResident,
		Symbols:      symbols,
		SecurityIDs:  securityIDs,
		Side:         side,
		Countries:    countries,
		Action:       action,
		ReasonClient: reasonClient,
		ReasonAdmin:  reasonAdmin,
		MinQuantity:  minQty,
		MaxQuantity:  maxQty,
	}
	return r, r.Validate()
}

// NewStockWatchRestriction builds a monitoring restriction carrying only
// quantity thresholds.
func NewStockWatchRestriction(id int64, symbols, securityIDs []string, side Side, action ActionType, reasonClient, reasonAdmin string, minQty, maxQty decimal.Decimal) (*TradingRestriction, error) {
	r := &TradingRestriction{
		ID:           id,
		Type:         TypeStockWatch,
		Symbols:      symbols,
		SecurityIDs:  securityIDs,
		Side:         side,
		Action:       action,
		ReasonClient: reasonClient,
		ReasonAdmin:  reasonAdmin,
		MinQuantity:  minQty,
		MaxQuantity:  maxQty,
	}
	return r, r.Validate()
}

// SymbolBlockParams mirrors the full field set of a SYMBOL_BLOCK record.
type SymbolBlockParams struct {
	ID                     int64
	Symbols                []string
	SecurityIDs            []string
	BlockInstrument        BlockInstrumentType
	Strategies             []model.StrategyType
	Options                OptionFilter
	AdminOrderTypes        []model.AdminOrderType
	Side                   Side
	RequiredPositionEffect model.PositionEffect
	Accounts               []string
	Action                 ActionType
	ReasonClient           string
	ReasonAdmin            string
	MinQuantity            decimal.Decimal
	MaxQuantity            decimal.Decimal
	EffectiveFrom          time.Time
	EffectiveUntil         time.Time
}

func NewSymbolBlockRestriction(p SymbolBlockParams) (*TradingRestriction, error) {
	r := &TradingRestriction{
		ID:                     p.ID,
		Type:                   TypeSymbolBlock,
		Symbols:                p.Symbols,
		SecurityIDs:            p.SecurityIDs,
		BlockInstrument:        p.BlockInstrument,
		Strategies:             p.Strategies,
		Options:                p.Options,
		AdminOrderTypes:        p.AdminOrderTypes,
		Side:                   p.Side,
		RequiredPositionEffect: p.RequiredPositionEffect,
		Accounts:               p.Accounts,
		Action:                 p.Action,
		ReasonClient:           p.ReasonClient,
		ReasonAdmin:            p.ReasonAdmin,
		MinQuantity:            p.MinQuantity,
		MaxQuantity:            p.MaxQuantity,
		EffectiveFrom:          p.EffectiveFrom,
		EffectiveUntil:         p.EffectiveUntil,
	}
	return r, r.Validate()
}

// Validate rejects malformed records at load time. A restriction that fails
// here must never reach a Catalog.
func (r *TradingRestriction) Validate() error {
	switch r.Type {
	case TypeCTO, TypeTender, TypeNonResident, TypeStockWatch, TypeSymbolBlock:
	default:
		return fmt.Errorf("restriction %d: unknown type %q", r.ID, r.Type)
	}

	if len(r.Symbols) == 0 && len(r.SecurityIDs) == 0 {
		return fmt.Errorf("restriction %d: empty symbol and security-number sets", r.ID)
	}

	switch r.Side {
	case SideBuy, SideSell, SideBoth:
	default:
		return fmt.Errorf("restriction %d: invalid side %q", r.ID, r.Side)
	}

	switch r.Action {
	case ActionRejection, ActionWarning:
	default:
		return fmt.Errorf("restriction %d: invalid action %q", r.ID, r.Action)
	}

	if !r.MaxQuantity.IsZero() && r.MaxQuantity.LessThan(r.MinQuantity) {
		return fmt.Errorf("restriction %d: max quantity below min quantity", r.ID)
	}

	if !r.EffectiveUntil.IsZero() && r.EffectiveUntil.Before(r.EffectiveFrom) {
		return fmt.Errorf("restriction %d: effective window ends before it starts", r.ID)
	}

	switch r.Type {
	case TypeTender:
		if !r.TenderQuantityLimit.IsPositive() {
			return fmt.Errorf("restriction %d: tender quantity limit must be positive", r.ID)
		}
	case TypeNonResident:
		if len(r.Countries) == 0 {
			return fmt.Errorf("restriction %d: non-resident restriction needs a country set", r.ID)
		}
	case TypeSymbolBlock:
		switch r.BlockInstrument {
		case BlockAll, BlockOptionOnly, BlockStockOnly:
		default:
			return fmt.Errorf("restriction %d: invalid block instrument type %q", r.ID, r.BlockInstrument)
		}
		switch r.Options {
		case OptionCall, OptionPut, OptionCallAndPut, "":
		default:
			return fmt.Errorf("restriction %d: invalid option filter %q", r.ID, r.Options)
		}
	}

	return nil
}

// ActiveAt reports whether the evaluation instant falls inside
// [EffectiveFrom, EffectiveUntil). A zero EffectiveUntil never expires.
func (r *TradingRestriction) ActiveAt(at time.Time) bool {
	if at.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveUntil.IsZero() {
		return true
	}
	return at.Before(r.EffectiveUntil)
}

func (r *TradingRestriction) appliesToAccount(accountID string) bool {
	if len(r.Accounts) == 0 {
		return true
	}
	return contains(r.Accounts, accountID)
}

func (r *TradingRestriction) sideMatches(side model.OrderSide) bool {
	return r.Side == SideBoth || string(r.Side) == string(side)
}

// scopeMatches is exact membership in the restricted sets, never a prefix
// match.
func (r *TradingRestriction) scopeMatches(symbol, securityID string) bool {
	if symbol != "" && contains(r.Symbols, symbol) {
		return true
	}
	return securityID != "" && contains(r.SecurityIDs, securityID)
}

// quantityInBand checks the [min, max] watch band. An unset band always
// matches.
func (r *TradingRestriction) quantityInBand(qty decimal.Decimal) bool {
	if qty.LessThan(r.MinQuantity) {
		return false
	}
	if !r.MaxQuantity.IsZero() && qty.GreaterThan(r.MaxQuantity) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type PositionEffect string

const (
	PositionEffectOpening PositionEffect = "OPENING"
	PositionEffectClosing PositionEffect = "CLOSING"
)

type StrategyType string

const (
	StrategyTypeStock    StrategyType = "STOCK"
	StrategyTypeCall     StrategyType = "CALL"
	StrategyTypePut      StrategyType = "PUT"
	StrategyTypeSpread   StrategyType = "SPREAD"
	StrategyTypeStraddle StrategyType = "STRADDLE"
	StrategyTypeCombo    StrategyType = "COMBO"
)

type AdminOrderType string

const (
	AdminOrderTypeMarket AdminOrderType = "MARKET"
	AdminOrderTypeLimit  AdminOrderType = "LIMIT"
	AdminOrderTypeStop   AdminOrderType = "STOP"
)

type ProcessingStage string

const (
	ProcessingStageOrderEntry      ProcessingStage = "ORDER_ENTRY"
	ProcessingStageOrderActivation ProcessingStage = "ORDER_ACTIVATION"
)

var (
	errEmptyAccount      = errors.New("order account must not be empty")
	errNoLegs            = errors.New("order must have at least one leg")
	errNonPositiveQty    = errors.New("order quantity must be positive")
	errNonPositiveRatio  = errors.New("leg ratio quantity must be positive")
	errMissingInstrument = errors.New("leg instrument must have a symbol")
)

// OrderLeg is one component of a multi-part order. Legs are owned by exactly
// one Order and are never mutated after construction.
type OrderLeg struct {
	Instrument     instrument.Instrument
	PositionCode   string
	PositionEffect PositionEffect
	RatioQuantity  decimal.Decimal
}

// Order is an immutable view of an order submitted for validation. Leg order
// matters: failures are reported by ascending leg index.
type Order struct {
	AccountID      string
	Symbol         string // underlying symbol
	Side           OrderSide
	Quantity       decimal.Decimal
	PositionEffect PositionEffect
	StrategyType   StrategyType
	AdminOrderType AdminOrderType
	TransactTime   time.Time
	Legs           []OrderLeg
}

// NewOrder validates creation invariants and copies the leg slice so callers
// cannot alias into the order afterwards.
func NewOrder(accountID, symbol string, side OrderSide, quantity decimal.Decimal, effect PositionEffect, legs []OrderLeg) (*Order, error) {
	if accountID == "" {
		return nil, errEmptyAccount
	}
	if len(legs) == 0 {
		return nil, errNoLegs
	}
	if !quantity.IsPositive() {
		return nil, errNonPositiveQty
	}
	for _, leg := range legs {
		if leg.Instrument.Symbol == "" {
			return nil, errMissingInstrument
		}
		if !leg.RatioQuantity.IsPositive() {
			return nil, errNonPositiveRatio
		}
	}

	order := &Order{
		AccountID:      accountID,
		Symbol:         symbol,
		Side:           side,
		Quantity:       quantity,
		PositionEffect: effect,
		Legs:           append([]OrderLeg(nil), legs...),
	}
	return order, nil
}

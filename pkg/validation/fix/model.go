package fixgateway

import (
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

// NewOrder is a decoded inbound order, single- or multi-leg, before it is
// mapped to the validation model.
type NewOrder struct {
	SessionID *quickfix.SessionID

	Account        string

	ClOrdID        string
	Symbol         string
	SecurityID     string
	Side           enum.Side
	OrdType        enum.OrdType
	PositionEffect enum.PositionEffect
	OrderQty       decimal.Decimal
	TransactTime   time.Time

	Legs []NewOrderLeg
}

type NewOrderLeg struct {
	Symbol         string
	SecurityID     string
	RatioQty       decimal.Decimal
	PositionEffect string // FIX tag 564, same values as PositionEffect
	RefID          string
}

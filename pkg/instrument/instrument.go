package instrument

import "fmt"

type Kind string

const (
	KindStock  Kind = "STOCK"
	KindOption Kind = "OPTION"
)

type Right string

const (
	RightCall Right = "CALL"
	RightPut  Right = "PUT"
	RightNone Right = ""
)

// Symbol is the identity key of an instrument. Two legs reference the same
// instrument iff their identity keys are equal.
type Symbol string

type Instrument struct {
	Symbol     string
	Underlying string
	Kind       Kind
	Right      Right
	SecurityID string
}

// NewStock builds a stock instrument. The underlying of a stock is itself.
func NewStock(symbol, securityID string) Instrument {
	return Instrument{
		Symbol:     symbol,
		Underlying: symbol,
		Kind:       KindStock,
		SecurityID: securityID,
	}
}

// NewOption builds an option instrument from a dot-prefixed option symbol
// such as ".IBM7140419P430". Underlying and right are derived from the symbol.
func NewOption(symbol, securityID string) (Instrument, error) {
	c, err := ParseOptionSymbol(symbol)
	if err != nil {
		return Instrument{}, fmt.Errorf("instrument: %w", err)
	}

	return Instrument{
		Symbol:     symbol,
		Underlying: c.Underlying,
		Kind:       KindOption,
		Right:      c.Right,
		SecurityID: securityID,
	}, nil
}

// IdentityKey returns the comparison key for this instrument. For options it
// is the option symbol itself, never the underlying stock symbol.
func (i Instrument) IdentityKey() Symbol {
	return Symbol(i.Symbol)
}

func (i Instrument) IsOption() bool {
	return i.Kind == KindOption
}

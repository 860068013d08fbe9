package instrument

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OptionSymbolComponents holds the parts encoded in a dot-prefixed option
// symbol: root (which may carry a weekly marker, e.g. IBM7), expiry as yymmdd,
// right and strike. Example: ".IBM7140419P430" -> root IBM7, expiry 2014-04-19,
// put, strike 430.
type OptionSymbolComponents struct {
	Root       string
	Underlying string
	Expiration time.Time
	Right      Right
	Strike     decimal.Decimal
}

// ParseOptionSymbol splits an option symbol into its components. The root is
// everything before the 6-digit expiry; the underlying is the root with any
// trailing weekly-marker digits removed.
func ParseOptionSymbol(symbol string) (OptionSymbolComponents, error) {
	body := strings.TrimPrefix(symbol, ".")
	if body == "" {
		return OptionSymbolComponents{}, fmt.Errorf("empty option symbol %q", symbol)
	}

	// scan for yymmdd + right + strike digits
	for i := 1; i+7 <= len(body); i++ {
		if !allDigits(body[i : i+6]) {
			continue
		}
		r := body[i+6]
		if r != 'C' && r != 'P' {
			continue
		}
		strikePart := body[i+7:]
		if strikePart == "" || !allDigits(strikePart) {
			continue
		}

		expiry, err := time.Parse("060102", body[i:i+6])
		if err != nil {
			continue
		}

		strike, err := decimal.NewFromString(strikePart)
		if err != nil {
			return OptionSymbolComponents{}, fmt.Errorf("invalid strike in option symbol %q", symbol)
		}

		root := body[:i]
		right := RightCall
		if r == 'P' {
			right = RightPut
		}

		return OptionSymbolComponents{
			Root:       root,
			Underlying: strings.TrimRight(root, "0123456789"),
			Expiration: expiry,
			Right:      right,
			Strike:     strike,
		}, nil
	}

	return OptionSymbolComponents{}, fmt.Errorf("cannot parse option symbol %q", symbol)
}

// FormatOptionSymbol is the inverse of ParseOptionSymbol.
func FormatOptionSymbol(c OptionSymbolComponents) (string, error) {
	if c.Root == "" {
		return "", fmt.Errorf("option symbol needs a root")
	}
	if c.Right != RightCall && c.Right != RightPut {
		return "", fmt.Errorf("invalid option right %q", c.Right)
	}

	r := "C"
	if c.Right == RightPut {
		r = "P"
	}

	return fmt.Sprintf(".%s%s%s%s", c.Root, c.Expiration.Format("060102"), r, c.Strike.String()), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

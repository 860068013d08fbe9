package validation

import (
	"context"
	"fmt"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// LegEquality selects the granularity at which two legs count as duplicates.
type LegEquality string

const (
	// LegEqualityInstrument compares instrument identity keys only.
	LegEqualityInstrument LegEquality = "INSTRUMENT"
	// LegEqualityInstrumentPosition also compares the position code.
	LegEqualityInstrumentPosition LegEquality = "INSTRUMENT_POSITION"
	// LegEqualityFullLeg compares the whole leg value.
	LegEqualityFullLeg LegEquality = "FULL_LEG"
)

// LegConsistencyRule checks structural validity across an order's legs,
// independent of any restriction: a spread or combination order must reference
// distinct instruments per leg.
type LegConsistencyRule struct {
	Equality LegEquality
}

func NewLegConsistencyRule(eq LegEquality) *LegConsistencyRule {
	if eq == "" {
		eq = LegEqualityInstrument
	}
	return &LegConsistencyRule{Equality: eq}
}

func (r *LegConsistencyRule) Name() string { return "leg_consistency" }

// Evaluate reports the first duplicate leg pair by ascending leg index.
func (r *LegConsistencyRule) Evaluate(_ context.Context, in *Input) []*Violation {
	seen := make(map[string]int, len(in.Order.Legs))
	for i := range in.Order.Legs {
		key := r.legKey(&in.Order.Legs[i])
		if first, ok := seen[key]; ok {
			return []*Violation{{
				Kind:        ViolationDuplicateLegInstrument,
				Action:      restriction.ActionRejection,
				ReasonAdmin: fmt.Sprintf("legs %d and %d reference the same instrument %s", first, i, in.Order.Legs[i].Instrument.Symbol),
				LegIndex:    i,
			}}
		}
		seen[key] = i
	}
	return nil
}

func (r *LegConsistencyRule) legKey(leg *model.OrderLeg) string {
	key := string(leg.Instrument.IdentityKey())
	switch r.Equality {
	case LegEqualityInstrumentPosition:
		key += "|" + leg.PositionCode
	case LegEqualityFullLeg:
		key += "|" + leg.PositionCode + "|" + string(leg.PositionEffect) + "|" + leg.RatioQuantity.String()
	}
	return key
}

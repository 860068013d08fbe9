package validation

import (
	"context"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
)

// RestrictionRule evaluates the active restriction snapshot against the
// order. It produces one candidate violation per applicable restriction, in
// ascending restriction-ID order.
type RestrictionRule struct{}

func NewRestrictionRule() *RestrictionRule { return &RestrictionRule{} }

func (r *RestrictionRule) Name() string { return "trading_restrictions" }

func (r *RestrictionRule) Evaluate(_ context.Context, in *Input) []*Violation {
	if in.Context == nil || in.Context.Catalog == nil {
		return nil
	}

	var out []*Violation
	for _, tr := range in.Context.Catalog.CandidatesForOrder(in.Order) {
		match := restriction.Match(tr, in.Order, in.Account, in.Context.At)
		if match == nil {
			continue
		}
		out = append(out, &Violation{
			Kind:          kindForRestriction(tr.Type),
			Action:        tr.Action,
			ReasonClient:  tr.ReasonClient,
			ReasonAdmin:   tr.ReasonAdmin,
			LegIndex:      match.LegIndex,
			RestrictionID: tr.ID,
		})
	}
	return out
}

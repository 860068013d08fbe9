package restriction

import (
	"fmt"
	"sort"
	"time"

	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// Catalog is an immutable snapshot of restriction records with symbol and
// security-number indexes. Build a new Catalog on refresh instead of mutating
// one in place; validations running against an old snapshot are unaffected.
type Catalog struct {
	version      int64
	restrictions []*TradingRestriction
	bySymbol     map[string][]*TradingRestriction
	bySecurityID map[string][]*TradingRestriction
}

// NewCatalog validates every record and builds the lookup indexes.
// Restrictions are kept in ascending ID order so evaluation is reproducible.
func NewCatalog(version int64, restrictions []*TradingRestriction) (*Catalog, error) {
	sorted := append([]*TradingRestriction(nil), restrictions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		version:      version,
		restrictions: sorted,
		bySymbol:     make(map[string][]*TradingRestriction),
		bySecurityID: make(map[string][]*TradingRestriction),
	}

	for _, r := range sorted {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		for _, s := range r.Symbols {
			c.bySymbol[s] = append(c.bySymbol[s], r)
		}
		for _, s := range r.SecurityIDs {
			c.bySecurityID[s] = append(c.bySecurityID[s], r)
		}
	}

	return c, nil
}

func (c *Catalog) Version() int64 { return c.version }

func (c *Catalog) Len() int { return len(c.restrictions) }

// ActiveAt returns the restrictions whose effective window covers the
// evaluation instant, in ascending ID order.
func (c *Catalog) ActiveAt(at time.Time) []*TradingRestriction {
	var out []*TradingRestriction
	for _, r := range c.restrictions {
		if r.ActiveAt(at) {
			out = append(out, r)
		}
	}
	return out
}

// CandidatesFor returns the restrictions indexed under a symbol or security
// number. Callers still run the full Match predicate on each candidate.
func (c *Catalog) CandidatesFor(symbol, securityID string) []*TradingRestriction {
	seen := make(map[int64]struct{})
	var out []*TradingRestriction
	if symbol != "" {
		for _, r := range c.bySymbol[symbol] {
			if _, ok := seen[r.ID]; !ok {
				seen[r.ID] = struct{}{}
				out = append(out, r)
			}
		}
	}
	if securityID != "" {
		for _, r := range c.bySecurityID[securityID] {
			if _, ok := seen[r.ID]; !ok {
				seen[r.ID] = struct{}{}
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CandidatesForOrder collects the candidates for the order symbol and every
// leg instrument, deduplicated, in ascending ID order.
func (c *Catalog) CandidatesForOrder(order *model.Order) []*TradingRestriction {
	seen := make(map[int64]struct{})
	var out []*TradingRestriction

	add := func(rs []*TradingRestriction) {
		for _, r := range rs {
			if _, ok := seen[r.ID]; !ok {
				seen[r.ID] = struct{}{}
				out = append(out, r)
			}
		}
	}

	add(c.bySymbol[order.Symbol])
	for i := range order.Legs {
		inst := order.Legs[i].Instrument
		add(c.bySymbol[inst.Symbol])
		add(c.bySymbol[inst.Underlying])
		if inst.SecurityID != "" {
			add(c.bySecurityID[inst.SecurityID])
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

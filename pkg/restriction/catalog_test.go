package restriction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

func mustCTO(t *testing.T, id int64, symbols, securityIDs []string) *TradingRestriction {
	t.Helper()
	r, err := NewCTORestriction(id, symbols, securityIDs, SideBoth, ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewCatalogRejectsMalformedRecords(t *testing.T) {
	bad := &TradingRestriction{ID: 1, Type: "BOGUS"}
	if _, err := NewCatalog(1, []*TradingRestriction{bad}); err == nil {
		t.Fatal("expected catalog build to fail on a malformed record")
	}
}

func TestCatalogCandidatesFor(t *testing.T) {
	r1 := mustCTO(t, 1, []string{"IBM"}, nil)
	r2 := mustCTO(t, 2, []string{"IBM", "MSFT"}, []string{"459200101"})
	r3 := mustCTO(t, 3, nil, []string{"459200101"})

	c, err := NewCatalog(7, []*TradingRestriction{r3, r1, r2})
	if err != nil {
		t.Fatal(err)
	}
	if c.Version() != 7 {
		t.Errorf("version = %d, want 7", c.Version())
	}
	if c.Len() != 3 {
		t.Errorf("len = %d, want 3", c.Len())
	}

	got := c.CandidatesFor("IBM", "")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("CandidatesFor(IBM) = %v, want ids 1,2 ascending", ids(got))
	}

	// overlapping symbol and security id must not duplicate a record
	got = c.CandidatesFor("MSFT", "459200101")
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("CandidatesFor(MSFT, 459200101) = %v, want ids 2,3", ids(got))
	}

	if len(c.CandidatesFor("AAPL", "")) != 0 {
		t.Error("unindexed symbol must yield no candidates")
	}
}

func TestCatalogCandidatesForOrderIncludesUnderlying(t *testing.T) {
	r := mustCTO(t, 1, []string{"IBM"}, nil)
	c, err := NewCatalog(1, []*TradingRestriction{r})
	if err != nil {
		t.Fatal(err)
	}

	inst, err := instrument.NewOption(".IBM7140419P430", "")
	if err != nil {
		t.Fatal(err)
	}
	order, err := model.NewOrder("ACC1", "", model.OrderSideBuy, decimal.NewFromInt(1), model.PositionEffectOpening,
		[]model.OrderLeg{{Instrument: inst, RatioQuantity: decimal.NewFromInt(1)}})
	if err != nil {
		t.Fatal(err)
	}

	got := c.CandidatesForOrder(order)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("option leg must pull its underlying's restrictions, got %v", ids(got))
	}
}

func TestCatalogActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	active := mustCTO(t, 1, []string{"IBM"}, nil)
	expired := mustCTO(t, 2, []string{"IBM"}, nil)
	expired.EffectiveUntil = now.AddDate(0, -1, 0)
	expired.EffectiveFrom = now.AddDate(0, -2, 0)
	future := mustCTO(t, 3, []string{"IBM"}, nil)
	future.EffectiveFrom = now.AddDate(0, 1, 0)

	c, err := NewCatalog(1, []*TradingRestriction{active, expired, future})
	if err != nil {
		t.Fatal(err)
	}

	got := c.ActiveAt(now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("ActiveAt = %v, want id 1 only", ids(got))
	}
}

func ids(rs []*TradingRestriction) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

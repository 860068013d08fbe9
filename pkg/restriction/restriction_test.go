package restriction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateRejectsMalformedRecords(t *testing.T) {
	base := func() *TradingRestriction {
		return &TradingRestriction{
			ID:      1,
			Type:    TypeCTO,
			Symbols: []string{"IBM"},
			Side:    SideBoth,
			Action:  ActionRejection,
		}
	}

	cases := []struct {
		name   string
		mutate func(r *TradingRestriction)
	}{
		{"unknown type", func(r *TradingRestriction) { r.Type = "BOGUS" }},
		{"empty scope", func(r *TradingRestriction) { r.Symbols = nil; r.SecurityIDs = nil }},
		{"invalid side", func(r *TradingRestriction) { r.Side = "SHORT" }},
		{"invalid action", func(r *TradingRestriction) { r.Action = "BLOCK" }},
		{"inverted band", func(r *TradingRestriction) {
			r.MinQuantity = decimal.NewFromInt(100)
			r.MaxQuantity = decimal.NewFromInt(10)
		}},
		{"inverted window", func(r *TradingRestriction) {
			r.EffectiveFrom = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			r.EffectiveUntil = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		}},
		{"tender without limit", func(r *TradingRestriction) { r.Type = TypeTender }},
		{"non-resident without countries", func(r *TradingRestriction) { r.Type = TypeNonResident }},
		{"symbol block without block instrument", func(r *TradingRestriction) { r.Type = TypeSymbolBlock }},
		{"symbol block bad option filter", func(r *TradingRestriction) {
			r.Type = TypeSymbolBlock
			r.BlockInstrument = BlockAll
			r.Options = "STRADDLE"
		}},
	}

	for _, tc := range cases {
		r := base()
		tc.mutate(r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestActiveAtWindow(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	r := &TradingRestriction{EffectiveFrom: from, EffectiveUntil: until}

	if r.ActiveAt(from.Add(-time.Second)) {
		t.Error("active before effective_from")
	}
	if !r.ActiveAt(from) {
		t.Error("effective_from is inclusive")
	}
	if !r.ActiveAt(until.Add(-time.Second)) {
		t.Error("inactive inside window")
	}
	if r.ActiveAt(until) {
		t.Error("effective_until is exclusive")
	}

	unbounded := &TradingRestriction{EffectiveFrom: from}
	if !unbounded.ActiveAt(from.AddDate(10, 0, 0)) {
		t.Error("zero effective_until must never expire")
	}
}

func TestQuantityInBand(t *testing.T) {
	r := &TradingRestriction{
		MinQuantity: decimal.NewFromInt(10),
		MaxQuantity: decimal.NewFromInt(100),
	}

	if r.quantityInBand(decimal.NewFromInt(5)) {
		t.Error("below min must not match")
	}
	if !r.quantityInBand(decimal.NewFromInt(10)) {
		t.Error("min is inclusive")
	}
	if !r.quantityInBand(decimal.NewFromInt(100)) {
		t.Error("max is inclusive")
	}
	if r.quantityInBand(decimal.NewFromInt(101)) {
		t.Error("above max must not match")
	}

	open := &TradingRestriction{MinQuantity: decimal.NewFromInt(10)}
	if !open.quantityInBand(decimal.NewFromInt(1_000_000)) {
		t.Error("zero max means unbounded above")
	}
}

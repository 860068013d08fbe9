package audit

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

func feedOrder(t *testing.T) *model.Order {
	t.Helper()
	order, err := model.NewOrder("ACC1", "IBM", model.OrderSideBuy, decimal.NewFromInt(10), model.PositionEffectOpening,
		[]model.OrderLeg{{
			Instrument:    instrument.NewStock("IBM", ""),
			RatioQuantity: decimal.NewFromInt(1),
		}})
	if err != nil {
		t.Fatal(err)
	}
	return order
}

func TestFeedRecordsHistoryWithoutProducer(t *testing.T) {
	feed := NewFeed(nil, "", 0)
	order := feedOrder(t)

	feed.OnViolation(context.Background(), order, &validation.Violation{
		Kind:          validation.ViolationStockWatch,
		Action:        restriction.ActionWarning,
		RestrictionID: 7,
		LegIndex:      -1,
	})

	got := feed.Recent(10)
	if len(got) != 1 {
		t.Fatalf("history size = %d, want 1", len(got))
	}
	ev := got[0]
	if ev.AccountID != "ACC1" || ev.Symbol != "IBM" {
		t.Errorf("event order fields: %+v", ev)
	}
	if ev.Kind != string(validation.ViolationStockWatch) || ev.RestrictionID != 7 {
		t.Errorf("event violation fields: %+v", ev)
	}
	if ev.EventID == "" {
		t.Error("event id must be set")
	}
}

func TestFeedHistoryIsBoundedAndNewestFirst(t *testing.T) {
	feed := NewFeed(nil, "", 3)
	order := feedOrder(t)

	for i := 0; i < 5; i++ {
		feed.OnViolation(context.Background(), order, &validation.Violation{
			Kind:     validation.ViolationStockWatch,
			Action:   restriction.ActionWarning,
			LegIndex: i,
		})
	}

	got := feed.Recent(0)
	if len(got) != 3 {
		t.Fatalf("history size = %d, want limit 3", len(got))
	}
	if got[0].LegIndex != 4 || got[1].LegIndex != 3 || got[2].LegIndex != 2 {
		t.Errorf("want newest first, got leg indexes %d,%d,%d", got[0].LegIndex, got[1].LegIndex, got[2].LegIndex)
	}
}

func TestFeedEventIDsAreUnique(t *testing.T) {
	feed := NewFeed(nil, "", 0)
	order := feedOrder(t)

	for i := 0; i < 10; i++ {
		feed.OnViolation(context.Background(), order, &validation.Violation{
			Kind:   validation.ViolationStockWatch,
			Action: restriction.ActionWarning,
		})
	}

	seen := map[string]bool{}
	for _, ev := range feed.Recent(0) {
		if seen[ev.EventID] {
			t.Fatalf("duplicate event id %s", ev.EventID)
		}
		seen[ev.EventID] = true
	}
}

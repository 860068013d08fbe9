package restriction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

var matchAt = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func stockOrder(t *testing.T, account, symbol string, side model.OrderSide, qty int64) *model.Order {
	t.Helper()
	order, err := model.NewOrder(account, symbol, side, decimal.NewFromInt(qty), model.PositionEffectOpening,
		[]model.OrderLeg{{
			Instrument:    instrument.NewStock(symbol, ""),
			RatioQuantity: decimal.NewFromInt(1),
		}})
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	return order
}

func optionOrder(t *testing.T, account, optionSymbol string, side model.OrderSide, qty int64, effect model.PositionEffect) *model.Order {
	t.Helper()
	inst, err := instrument.NewOption(optionSymbol, "")
	if err != nil {
		t.Fatalf("build option: %v", err)
	}
	order, err := model.NewOrder(account, inst.Underlying, side, decimal.NewFromInt(qty), effect,
		[]model.OrderLeg{{
			Instrument:     inst,
			PositionEffect: effect,
			RatioQuantity:  decimal.NewFromInt(1),
		}})
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	return order
}

func TestMatchCTOByOrderSymbol(t *testing.T) {
	r, err := NewCTORestriction(1, []string{"IBM"}, nil, SideBoth, ActionRejection, "restricted", "cto", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	v := Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100), nil, matchAt)
	if v == nil {
		t.Fatal("expected a match")
	}
	if v.LegIndex != -1 {
		t.Errorf("order-level match should carry leg index -1, got %d", v.LegIndex)
	}

	if Match(r, stockOrder(t, "ACC1", "MSFT", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("unrelated symbol must not match")
	}
}

func TestMatchScopeIsExactNeverPrefix(t *testing.T) {
	r, err := NewCTORestriction(1, []string{"IBM"}, nil, SideBoth, ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	if Match(r, stockOrder(t, "ACC1", "IBMX", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("prefix of restricted symbol must not match")
	}
}

func TestMatchCTOByLegUnderlying(t *testing.T) {
	r, err := NewCTORestriction(1, []string{"IBM"}, nil, SideBoth, ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	order := optionOrder(t, "ACC1", ".IBM7140419P430", model.OrderSideBuy, 10, model.PositionEffectOpening)
	order.Symbol = "" // force the leg path
	v := Match(r, order, nil, matchAt)
	if v == nil {
		t.Fatal("option leg on restricted underlying must match")
	}
	if v.LegIndex != 0 {
		t.Errorf("leg index = %d, want 0", v.LegIndex)
	}
}

func TestMatchSideAndAccountGates(t *testing.T) {
	r, err := NewCTORestriction(1, []string{"IBM"}, nil, SideSell, ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("buy order must not match a sell-side restriction")
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideSell, 100), nil, matchAt) == nil {
		t.Error("sell order must match a sell-side restriction")
	}

	scoped := *r
	scoped.Accounts = []string{"ACC2"}
	if Match(&scoped, stockOrder(t, "ACC1", "IBM", model.OrderSideSell, 100), nil, matchAt) != nil {
		t.Error("account-scoped restriction must skip other accounts")
	}
	if Match(&scoped, stockOrder(t, "ACC2", "IBM", model.OrderSideSell, 100), nil, matchAt) == nil {
		t.Error("account-scoped restriction must hit the listed account")
	}
}

func TestMatchTenderQuantityLimit(t *testing.T) {
	r, err := NewTenderRestriction(2, []string{"IBM"}, nil, nil, decimal.NewFromInt(100),
		ActionRejection, "tender", "tender restricted", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 50), nil, matchAt) != nil {
		t.Error("quantity at or below the tender limit must not match")
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("quantity equal to the tender limit must not match")
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 150), nil, matchAt) == nil {
		t.Error("quantity above the tender limit must match")
	}
}

func TestMatchNonResidentCountry(t *testing.T) {
	r, err := NewNonResidentRestriction(3, []string{"IBM"}, nil, SideBoth, []string{"JP", "CN"},
		ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	order := stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100)

	if Match(r, order, model.StaticAccount{ID: "ACC1", CountryCode: "US"}, matchAt) != nil {
		t.Error("resident country must not match")
	}
	if Match(r, order, model.StaticAccount{ID: "ACC1", CountryCode: "JP"}, matchAt) == nil {
		t.Error("listed country must match")
	}
	if Match(r, order, nil, matchAt) != nil {
		t.Error("missing account content must not match")
	}
}

func TestMatchStockWatchQuantityBand(t *testing.T) {
	r, err := NewStockWatchRestriction(4, []string{"IBM"}, nil, SideBoth, ActionWarning, "", "",
		decimal.NewFromInt(1000), decimal.NewFromInt(5000))
	if err != nil {
		t.Fatal(err)
	}

	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 500), nil, matchAt) != nil {
		t.Error("below the watch band must not match")
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 2000), nil, matchAt) == nil {
		t.Error("inside the watch band must match")
	}
	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 6000), nil, matchAt) != nil {
		t.Error("above the watch band must not match")
	}
}

func TestMatchSymbolBlockOptionOnly(t *testing.T) {
	r, err := NewSymbolBlockRestriction(SymbolBlockParams{
		ID:              5,
		Symbols:         []string{"IBM"},
		BlockInstrument: BlockOptionOnly,
		Side:            SideBoth,
		Action:          ActionRejection,
	})
	if err != nil {
		t.Fatal(err)
	}

	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("stock leg must pass an option-only block")
	}
	if Match(r, optionOrder(t, "ACC1", ".IBM7140419C430", model.OrderSideBuy, 10, model.PositionEffectOpening), nil, matchAt) == nil {
		t.Error("option leg must hit an option-only block")
	}
}

func TestMatchSymbolBlockOptionFilter(t *testing.T) {
	r, err := NewSymbolBlockRestriction(SymbolBlockParams{
		ID:              6,
		Symbols:         []string{"IBM"},
		BlockInstrument: BlockOptionOnly,
		Options:         OptionPut,
		Side:            SideBoth,
		Action:          ActionRejection,
	})
	if err != nil {
		t.Fatal(err)
	}

	if Match(r, optionOrder(t, "ACC1", ".IBM7140419C430", model.OrderSideBuy, 10, model.PositionEffectOpening), nil, matchAt) != nil {
		t.Error("call must pass a put-only block")
	}
	if Match(r, optionOrder(t, "ACC1", ".IBM7140419P430", model.OrderSideBuy, 10, model.PositionEffectOpening), nil, matchAt) == nil {
		t.Error("put must hit a put-only block")
	}
}

func TestMatchSymbolBlockPositionEffect(t *testing.T) {
	r, err := NewSymbolBlockRestriction(SymbolBlockParams{
		ID:                     7,
		Symbols:                []string{"IBM"},
		BlockInstrument:        BlockAll,
		Side:                   SideBoth,
		RequiredPositionEffect: model.PositionEffectOpening,
		Action:                 ActionRejection,
	})
	if err != nil {
		t.Fatal(err)
	}

	if Match(r, optionOrder(t, "ACC1", ".IBM7140419C430", model.OrderSideBuy, 10, model.PositionEffectClosing), nil, matchAt) != nil {
		t.Error("closing leg must pass an opening-only block")
	}
	if Match(r, optionOrder(t, "ACC1", ".IBM7140419C430", model.OrderSideBuy, 10, model.PositionEffectOpening), nil, matchAt) == nil {
		t.Error("opening leg must hit an opening-only block")
	}
}

func TestMatchSymbolBlockStrategyAndOrderTypeGates(t *testing.T) {
	r, err := NewSymbolBlockRestriction(SymbolBlockParams{
		ID:              8,
		Symbols:         []string{"IBM"},
		BlockInstrument: BlockAll,
		Side:            SideBoth,
		Strategies:      []model.StrategyType{model.StrategyTypeCall},
		AdminOrderTypes: []model.AdminOrderType{model.AdminOrderTypeMarket},
		Action:          ActionRejection,
	})
	if err != nil {
		t.Fatal(err)
	}

	order := optionOrder(t, "ACC1", ".IBM7140419C430", model.OrderSideBuy, 10, model.PositionEffectOpening)
	order.StrategyType = model.StrategyTypeCall
	order.AdminOrderType = model.AdminOrderTypeMarket
	if Match(r, order, nil, matchAt) == nil {
		t.Error("listed strategy and order type must match")
	}

	order.StrategyType = model.StrategyTypePut
	if Match(r, order, nil, matchAt) != nil {
		t.Error("unlisted strategy must not match")
	}

	order.StrategyType = model.StrategyTypeCall
	order.AdminOrderType = model.AdminOrderTypeLimit
	if Match(r, order, nil, matchAt) != nil {
		t.Error("unlisted admin order type must not match")
	}
}

func TestMatchInactiveRestriction(t *testing.T) {
	r, err := NewCTORestriction(9, []string{"IBM"}, nil, SideBoth, ActionRejection, "", "", decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	r.EffectiveFrom = matchAt.AddDate(0, 1, 0)

	if Match(r, stockOrder(t, "ACC1", "IBM", model.OrderSideBuy, 100), nil, matchAt) != nil {
		t.Error("restriction outside its effective window must not match")
	}
}

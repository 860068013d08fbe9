package fixgateway

import (
	"context"
	"log"
	"strings"

	"github.com/joripage/ordervalidation-dev/pkg/instrument"
	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
	"github.com/quickfixgo/enum"
	"github.com/shopspring/decimal"
)

// AccountDirectory resolves the FIX Account field to the account content the
// validation rules need (country of residence in particular).
type AccountDirectory interface {
	Account(accountID string) model.AccountContent
}

type FixGateway struct {
	cfg      *FixGatewayConfig
	app      *Application
	engine   *validation.Engine
	provider *restriction.Provider
	accounts AccountDirectory
}

type FixGatewayConfig struct {
	ConfigFilepath string
}

func NewFixGateway(cfg *FixGatewayConfig, engine *validation.Engine, provider *restriction.Provider, accounts AccountDirectory) *FixGateway {
	return &FixGateway{
		cfg:      cfg,
		engine:   engine,
		provider: provider,
		accounts: accounts,
	}
}

func (s *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(s.cfg.ConfigFilepath, s)
	if err != nil {
		log.Printf("start app err=%v", err)
		return err
	}
	s.app = app
	return nil
}

func (s *FixGateway) Stop() {
	if s.app != nil {
		stopApp(s.app)
	}
}

// ValidateOrder runs an inbound order through the validation engine and
// answers with an ExecutionReport: NEW when the order passes, REJECTED with
// the client reason text when it does not.
func (s *FixGateway) ValidateOrder(ctx context.Context, newOrder *NewOrder) {
	order, err := newOrderToModel(newOrder)
	if err != nil {
		log.Printf("reject ClOrdID=%s err=%v", newOrder.ClOrdID, err)
		_ = sendOrderReject(newOrder, err.Error())
		return
	}

	account := s.accounts.Account(newOrder.Account)
	vctx := validation.NewContext(s.provider.Snapshot(), newOrder.TransactTime)

	reason := s.engine.ValidateOrder(ctx, order, model.ProcessingStageOrderEntry, account, vctx)
	if err := sendValidationReport(newOrder, reason); err != nil {
		log.Printf("send report ClOrdID=%s err=%v", newOrder.ClOrdID, err)
	}
}

func newOrderToModel(newOrder *NewOrder) (*model.Order, error) {
	side := map[enum.Side]model.OrderSide{
		enum.Side_BUY:  model.OrderSideBuy,
		enum.Side_SELL: model.OrderSideSell,
	}[newOrder.Side]

	positionEffect := map[enum.PositionEffect]model.PositionEffect{
		enum.PositionEffect_OPEN:  model.PositionEffectOpening,
		enum.PositionEffect_CLOSE: model.PositionEffectClosing,
	}[newOrder.PositionEffect]

	adminOrderType := map[enum.OrdType]model.AdminOrderType{
		enum.OrdType_MARKET: model.AdminOrderTypeMarket,
		enum.OrdType_LIMIT:  model.AdminOrderTypeLimit,
		enum.OrdType_STOP:   model.AdminOrderTypeStop,
	}[newOrder.OrdType]

	var legs []model.OrderLeg
	if len(newOrder.Legs) == 0 {
		inst, err := buildInstrument(newOrder.Symbol, newOrder.SecurityID)
		if err != nil {
			return nil, err
		}
		legs = append(legs, model.OrderLeg{
			Instrument:     inst,
			PositionEffect: positionEffect,
			RatioQuantity:  decimal.NewFromInt(1),
		})
	} else {
		for _, l := range newOrder.Legs {
			inst, err := buildInstrument(l.Symbol, l.SecurityID)
			if err != nil {
				return nil, err
			}
			legEffect := map[string]model.PositionEffect{
				string(enum.PositionEffect_OPEN):  model.PositionEffectOpening,
				string(enum.PositionEffect_CLOSE): model.PositionEffectClosing,
			}[l.PositionEffect]
			if legEffect == "" {
				legEffect = positionEffect
			}
			legs = append(legs, model.OrderLeg{
				Instrument:     inst,
				PositionCode:   l.RefID,
				PositionEffect: legEffect,
				RatioQuantity:  l.RatioQty,
			})
		}
	}

	order, err := model.NewOrder(newOrder.Account, underlyingOf(newOrder.Symbol, legs), side, newOrder.OrderQty, positionEffect, legs)
	if err != nil {
		return nil, err
	}
	order.AdminOrderType = adminOrderType
	order.StrategyType = inferStrategy(legs)
	order.TransactTime = newOrder.TransactTime
	return order, nil
}

// Option symbols arrive dot-prefixed, everything else is a stock.
func buildInstrument(symbol, securityID string) (instrument.Instrument, error) {
	if strings.HasPrefix(symbol, ".") {
		return instrument.NewOption(symbol, securityID)
	}
	return instrument.NewStock(symbol, securityID), nil
}

func underlyingOf(symbol string, legs []model.OrderLeg) string {
	if symbol != "" && !strings.HasPrefix(symbol, ".") {
		return symbol
	}
	if len(legs) > 0 {
		return legs[0].Instrument.Underlying
	}
	return symbol
}

func inferStrategy(legs []model.OrderLeg) model.StrategyType {
	if len(legs) > 1 {
		return model.StrategyTypeCombo
	}
	inst := legs[0].Instrument
	switch {
	case inst.Right == instrument.RightCall:
		return model.StrategyTypeCall
	case inst.Right == instrument.RightPut:
		return model.StrategyTypePut
	default:
		return model.StrategyTypeStock
	}
}

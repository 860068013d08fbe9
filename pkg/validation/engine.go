package validation

import (
	"context"

	"go.uber.org/zap"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// Notifier receives every applicable violation, including WARN-action ones
// that do not fail the order. Implementations must not block validation.
type Notifier interface {
	OnViolation(ctx context.Context, order *model.Order, v *Violation)
}

// Engine runs the validation rules for one order. It is stateless across
// calls: the same order and context always produce the same result, so
// concurrent validations need no coordination.
type Engine struct {
	structural  *LegConsistencyRule
	restriction *RestrictionRule
	notifier    Notifier
	log         *zap.SugaredLogger
}

type Option func(*Engine)

// WithNotifier forwards applicable violations to an out-of-band channel.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLegEquality overrides the duplicate-leg granularity.
func WithLegEquality(eq LegEquality) Option {
	return func(e *Engine) { e.structural = NewLegConsistencyRule(eq) }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		structural:  NewLegConsistencyRule(LegEqualityInstrument),
		restriction: NewRestrictionRule(),
		log:         zap.S(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateOrder checks an order at the given processing stage. It returns nil
// when the order may proceed; a non-nil RuleFailReason is the binding failure.
//
// Structural violations take precedence and short-circuit. In the restriction
// phase the first REJECT-action violation in evaluation order binds; WARN-only
// outcomes do not fail the order but are forwarded to the notifier.
func (e *Engine) ValidateOrder(ctx context.Context, order *model.Order, stage model.ProcessingStage, account model.AccountContent, vctx *Context) *RuleFailReason {
	in := &Input{
		Order:   order,
		Stage:   stage,
		Account: account,
		Context: vctx,
	}

	if violations := e.structural.Evaluate(ctx, in); len(violations) > 0 {
		v := violations[0]
		e.notify(ctx, order, v)
		e.log.Debugw("order failed structural validation",
			"account", order.AccountID, "kind", v.Kind, "leg", v.LegIndex)
		return newFailReason(e.structural.Name(), v)
	}

	var binding *Violation
	for _, v := range e.restriction.Evaluate(ctx, in) {
		e.notify(ctx, order, v)
		if binding == nil && v.Action == restriction.ActionRejection {
			binding = v
		}
	}
	if binding == nil {
		return nil
	}

	e.log.Debugw("order failed restriction validation",
		"account", order.AccountID, "kind", binding.Kind, "restriction", binding.RestrictionID)
	return newFailReason(e.restriction.Name(), binding)
}

func (e *Engine) notify(ctx context.Context, order *model.Order, v *Violation) {
	if e.notifier != nil {
		e.notifier.OnViolation(ctx, order, v)
	}
}

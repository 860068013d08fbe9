// Package worker persists published violation events so compliance reviews
// can query them later.
package worker

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	kafkawrapper "github.com/joripage/ordervalidation-dev/pkg/kafka_wrapper"
	"github.com/joripage/ordervalidation-dev/pkg/logging"
	"github.com/joripage/ordervalidation-dev/pkg/restriction/repo"
	"github.com/joripage/ordervalidation-dev/pkg/validation/audit"
)

type Worker struct {
	violationEvent repo.IViolationEvent
}

func NewWorker(r repo.IRepo) *Worker {
	return &Worker{
		violationEvent: r.ViolationEvent(),
	}
}

// StartConsumer drains the violation topic until the context is done.
// Duplicate deliveries are tolerated: event IDs are primary keys, so a replay
// fails the insert and is skipped.
func (w *Worker) StartConsumer(ctx context.Context, cg *kafkawrapper.ConsumerGroup) error {
	return cg.Run(ctx, func(ctx context.Context, msg kafkawrapper.Message) error {
		ctx = logging.EnsureRequestID(ctx)
		var ev audit.Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.S().Warnw("unmarshal violation event failed", "err", err)
			return nil
		}
		return w.handleEvent(ctx, ev)
	})
}

func (w *Worker) handleEvent(ctx context.Context, ev audit.Event) error {
	logger, ctx := logging.GetLogger(ctx)
	logger.Debug(ctx, "persist violation event", zap.String("event_id", ev.EventID))

	_, err := w.violationEvent.Create(ctx, &repo.ViolationEvent{
		EventID:       ev.EventID,
		AccountID:     ev.AccountID,
		Symbol:        ev.Symbol,
		Kind:          ev.Kind,
		Action:        ev.Action,
		RestrictionID: ev.RestrictionID,
		LegIndex:      ev.LegIndex,
		ReasonAdmin:   ev.ReasonAdmin,
		OccurredAt:    ev.OccurredAt,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// at-least-once delivery: the event is already persisted
		logger.Debug(ctx, "violation event already persisted, skipping",
			zap.String("event_id", ev.EventID))
		return nil
	}
	return err
}

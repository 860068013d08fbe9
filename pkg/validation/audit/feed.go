// Package audit forwards validation violations to an out-of-band channel:
// every applicable violation, WARN and REJECT alike, is published to a kafka
// topic and kept in a bounded in-memory history for admin inspection.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"go.uber.org/zap"

	kafkawrapper "github.com/joripage/ordervalidation-dev/pkg/kafka_wrapper"
	"github.com/joripage/ordervalidation-dev/pkg/validation"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

const defaultHistoryLimit = 1024

// Event is the published form of one violation.
type Event struct {
	EventID       string    `json:"event_id"`
	AccountID     string    `json:"account_id"`
	Symbol        string    `json:"symbol"`
	Kind          string    `json:"kind"`
	Action        string    `json:"action"`
	RestrictionID int64     `json:"restriction_id"`
	LegIndex      int       `json:"leg_index"`
	ReasonAdmin   string    `json:"reason_admin"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Feed implements validation.Notifier. A nil producer disables publishing and
// keeps only the in-memory history, which the engine tests rely on.
type Feed struct {
	producer *kafkawrapper.Producer
	topic    string

	mu      sync.Mutex
	recent  deque.Deque[Event]
	limit   int
	counter int64
}

func NewFeed(producer *kafkawrapper.Producer, topic string, historyLimit int) *Feed {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Feed{
		producer: producer,
		topic:    topic,
		limit:    historyLimit,
	}
}

func (f *Feed) OnViolation(ctx context.Context, order *model.Order, v *validation.Violation) {
	f.mu.Lock()
	f.counter++
	ev := Event{
		EventID:       fmt.Sprintf("%s-%d-%d", order.AccountID, time.Now().UnixNano(), f.counter),
		AccountID:     order.AccountID,
		Symbol:        order.Symbol,
		Kind:          string(v.Kind),
		Action:        string(v.Action),
		RestrictionID: v.RestrictionID,
		LegIndex:      v.LegIndex,
		ReasonAdmin:   v.ReasonAdmin,
		OccurredAt:    time.Now(),
	}
	f.recent.PushBack(ev)
	for f.recent.Len() > f.limit {
		f.recent.PopFront()
	}
	f.mu.Unlock()

	if f.producer == nil {
		return
	}
	if err := f.producer.PublishJSON(ctx, f.topic, order.AccountID, ev); err != nil {
		zap.S().Warnw("publish violation event failed", "err", err, "event", ev.EventID)
	}
}

// Recent returns up to n latest events, newest first.
func (f *Feed) Recent(n int) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n <= 0 || n > f.recent.Len() {
		n = f.recent.Len()
	}
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.recent.At(f.recent.Len()-1-i))
	}
	return out
}

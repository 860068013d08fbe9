package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/joripage/ordervalidation-dev/pkg/restriction/repo"
	"github.com/joripage/ordervalidation-dev/pkg/validation/audit"
)

type fakeViolationEvent struct {
	createErr error
	created   []*repo.ViolationEvent
}

func (f *fakeViolationEvent) Create(_ context.Context, record *repo.ViolationEvent) (*repo.ViolationEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeViolationEvent) BulkCreate(_ context.Context, records []*repo.ViolationEvent) ([]*repo.ViolationEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, records...)
	return records, nil
}

func sampleEvent() audit.Event {
	return audit.Event{
		EventID:       "evt-1",
		AccountID:     "ACC1",
		Symbol:        "IBM",
		Kind:          "CTO",
		Action:        "REJECTION",
		RestrictionID: 42,
		LegIndex:      -1,
		ReasonAdmin:   "closing-only",
		OccurredAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandleEventPersists(t *testing.T) {
	fake := &fakeViolationEvent{}
	w := &Worker{violationEvent: fake}

	if err := w.handleEvent(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("created %d records, want 1", len(fake.created))
	}
	if got := fake.created[0]; got.EventID != "evt-1" || got.RestrictionID != 42 {
		t.Errorf("record = %+v", got)
	}
}

func TestHandleEventSkipsDuplicateDelivery(t *testing.T) {
	fake := &fakeViolationEvent{createErr: gorm.ErrDuplicatedKey}
	w := &Worker{violationEvent: fake}

	// a redelivered event is already in the table; the handler must not
	// surface an error, or the consumer group retries and dead-letters it
	if err := w.handleEvent(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("duplicate delivery must be skipped, got %v", err)
	}
}

func TestHandleEventPropagatesOtherErrors(t *testing.T) {
	fake := &fakeViolationEvent{createErr: errors.New("db down")}
	w := &Worker{violationEvent: fake}

	if err := w.handleEvent(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error")
	}
}

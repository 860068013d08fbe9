package repo

import (
	"context"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
)

type IRestriction interface {
	// List returns every restriction record mapped into the domain form.
	// Records that fail load-time validation abort the whole load.
	List(ctx context.Context) ([]*restriction.TradingRestriction, error)
}

type IViolationEvent interface {
	Create(ctx context.Context, record *ViolationEvent) (*ViolationEvent, error)
	BulkCreate(ctx context.Context, records []*ViolationEvent) ([]*ViolationEvent, error)
}

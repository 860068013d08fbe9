package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ViolationEvent is one audited validation outcome, persisted by the audit
// worker.
type ViolationEvent struct {
	EventID       string    `gorm:"column:event_id;primaryKey"`
	AccountID     string    `gorm:"column:account_id"`
	Symbol        string    `gorm:"column:symbol"`
	Kind          string    `gorm:"column:kind"`
	Action        string    `gorm:"column:action"`
	RestrictionID int64     `gorm:"column:restriction_id"`
	LegIndex      int       `gorm:"column:leg_index"`
	ReasonAdmin   string    `gorm:"column:reason_admin"`
	OccurredAt    time.Time `gorm:"column:occurred_at"`
}

func (ViolationEvent) TableName() string { return "violation_events" }

type ViolationEventSQLRepo struct {
	db *gorm.DB
}

func NewViolationEventSQLRepo(db *gorm.DB) *ViolationEventSQLRepo {
	return &ViolationEventSQLRepo{
		db: db,
	}
}

func (s *ViolationEventSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *ViolationEventSQLRepo) Create(ctx context.Context, record *ViolationEvent) (*ViolationEvent, error) {
	if err := s.dbWithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ViolationEventSQLRepo) BulkCreate(ctx context.Context, records []*ViolationEvent) ([]*ViolationEvent, error) {
	if len(records) == 0 {
		return records, nil
	}
	if err := s.dbWithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

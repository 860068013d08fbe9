package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

// TradingRestrictionRecord is the persisted form of a restriction. Mapping to
// the domain type happens through toDomain so malformed rows are rejected at
// load time instead of surfacing during a validation call.
type TradingRestrictionRecord struct {
	ID          int64          `gorm:"column:id;primaryKey"`
	Type        string         `gorm:"column:type"`
	Symbols     pq.StringArray `gorm:"column:symbols;type:text[]"`
	SecurityIDs pq.StringArray `gorm:"column:security_ids;type:text[]"`
	Side        string         `gorm:"column:side"`
	Accounts    pq.StringArray `gorm:"column:accounts;type:text[]"`

	MinQuantity decimal.Decimal `gorm:"column:min_quantity;type:numeric"`
	MaxQuantity decimal.Decimal `gorm:"column:max_quantity;type:numeric"`

	Action       string `gorm:"column:action"`
	ReasonClient string `gorm:"column:reason_client"`
	ReasonAdmin  string `gorm:"column:reason_admin"`

	EffectiveFrom  time.Time  `gorm:"column:effective_from"`
	EffectiveUntil *time.Time `gorm:"column:effective_until"`

	BlockInstrument        string         `gorm:"column:block_instrument"`
	Strategies             pq.StringArray `gorm:"column:strategies;type:text[]"`
	Options                string         `gorm:"column:options"`
	AdminOrderTypes        pq.StringArray `gorm:"column:admin_order_types;type:text[]"`
	RequiredPositionEffect string         `gorm:"column:required_position_effect"`

	Countries pq.StringArray `gorm:"column:countries;type:text[]"`

	TenderQuantityLimit decimal.Decimal `gorm:"column:tender_quantity_limit;type:numeric"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TradingRestrictionRecord) TableName() string { return "trading_restrictions" }

func (rec *TradingRestrictionRecord) toDomain() (*restriction.TradingRestriction, error) {
	r := &restriction.TradingRestriction{
		ID:                     rec.ID,
		Type:                   restriction.Type(rec.Type),
		Symbols:                rec.Symbols,
		SecurityIDs:            rec.SecurityIDs,
		Side:                   restriction.Side(rec.Side),
		Accounts:               rec.Accounts,
		MinQuantity:            rec.MinQuantity,
		MaxQuantity:            rec.MaxQuantity,
		Action:                 restriction.ActionType(rec.Action),
		ReasonClient:           rec.ReasonClient,
		ReasonAdmin:            rec.ReasonAdmin,
		EffectiveFrom:          rec.EffectiveFrom,
		BlockInstrument:        restriction.BlockInstrumentType(rec.BlockInstrument),
		Options:                restriction.OptionFilter(rec.Options),
		RequiredPositionEffect: model.PositionEffect(rec.RequiredPositionEffect),
		Countries:              rec.Countries,
		TenderQuantityLimit:    rec.TenderQuantityLimit,
	}
	if rec.EffectiveUntil != nil {
		r.EffectiveUntil = *rec.EffectiveUntil
	}
	for _, s := range rec.Strategies {
		r.Strategies = append(r.Strategies, model.StrategyType(s))
	}
	for _, s := range rec.AdminOrderTypes {
		r.AdminOrderTypes = append(r.AdminOrderTypes, model.AdminOrderType(s))
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("repo: %w", err)
	}
	return r, nil
}

type RestrictionSQLRepo struct {
	db *gorm.DB
}

func NewRestrictionSQLRepo(db *gorm.DB) *RestrictionSQLRepo {
	return &RestrictionSQLRepo{
		db: db,
	}
}

func (s *RestrictionSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *RestrictionSQLRepo) List(ctx context.Context) ([]*restriction.TradingRestriction, error) {
	var records []*TradingRestrictionRecord
	if err := s.dbWithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]*restriction.TradingRestriction, 0, len(records))
	for _, rec := range records {
		r, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

package repo

import (
	"gorm.io/gorm"
)

type IRepo interface {
	Restriction() IRestriction
	ViolationEvent() IViolationEvent
}

type Repo struct {
	validationDB *gorm.DB
}

func NewRepo(validationDB *gorm.DB) IRepo {
	return &Repo{
		validationDB: validationDB,
	}
}

func (r *Repo) Restriction() IRestriction {
	return NewRestrictionSQLRepo(r.validationDB)
}

func (r *Repo) ViolationEvent() IViolationEvent {
	return NewViolationEventSQLRepo(r.validationDB)
}

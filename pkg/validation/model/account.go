package model

// AccountContent is the read-only account lookup the validation core needs.
// Implementations resolve any I/O before validation starts; both methods are
// expected to be cheap and side-effect free.
type AccountContent interface {
	AccountID() string
	Country() string
}

// StaticAccount is an AccountContent backed by already-resolved values.
type StaticAccount struct {
	ID          string
	CountryCode string
}

func (a StaticAccount) AccountID() string { return a.ID }
func (a StaticAccount) Country() string   { return a.CountryCode }

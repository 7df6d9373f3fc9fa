package domain

import "github.com/shopspring/decimal"

// RateRecord is one persisted daily quote. The (Code, Date) pair is
// unique in storage; records are never updated or deleted.
type RateRecord struct {
	Code  string
	Date  Date
	Value decimal.Decimal
}

// RateView is a rate row joined with its currency metadata, as served
// by the read side.
type RateView struct {
	Code    string
	Name    string
	Nominal int
	Date    Date
	Value   decimal.Decimal
}

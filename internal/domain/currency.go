package domain

import "github.com/shopspring/decimal"

// Currency is immutable once created: it is inserted on the first
// encounter of an unknown code and never updated afterwards.
type Currency struct {
	Code    string
	Name    string
	Nominal int
}

// SnapshotEntry is one currency's data inside a daily snapshot from the
// rate source. It is never persisted as-is; reconciliation decomposes it
// into a Currency row and a RateRecord row.
type SnapshotEntry struct {
	Name    string
	Nominal int
	Value   decimal.Decimal
}

// DailySnapshot maps currency code to its quote for a single date.
type DailySnapshot map[string]SnapshotEntry

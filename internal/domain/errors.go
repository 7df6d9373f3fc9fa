package domain

import "errors"

var (
	// ErrNoData means the source has nothing published for a date
	// (weekend or holiday). Not a failure; the date stays unsynced.
	ErrNoData = errors.New("no rate data for date")

	// ErrNoRatesAvailable means the store had no rows for any of the
	// last three days.
	ErrNoRatesAvailable = errors.New("no rates available")

	ErrCurrencyExists = errors.New("currency already exists")
	ErrDuplicateRates = errors.New("rates already recorded for date")
	ErrUnknownCode    = errors.New("unknown currency code")
)

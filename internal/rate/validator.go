package rate

import (
	"errors"

	"cbrates/internal/domain"
)

var (
	ErrCodeRequired = errors.New("currency code is required")
	ErrCodeInvalid  = errors.New("currency code must be three letters")
)

type CurrencyValidator struct {
	cache *Cache
}

// ValidateCode checks the shape of a currency code and whether it has
// been seen by the sync cycle. New currencies become valid as soon as
// they land in the cache.
func (v *CurrencyValidator) ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if len(code) != 3 {
		return ErrCodeInvalid
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ErrCodeInvalid
		}
	}
	if !v.cache.HasCurrency(code) {
		return domain.ErrUnknownCode
	}
	return nil
}

func NewValidator(cache *Cache) *CurrencyValidator {
	return &CurrencyValidator{cache: cache}
}

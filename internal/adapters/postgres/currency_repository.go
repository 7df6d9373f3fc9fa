package postgres

import (
	"context"
	"fmt"

	"cbrates/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) List(ctx context.Context) (map[string]domain.Currency, error) {
	const q = `select code, name, nominal from currencies;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make(map[string]domain.Currency, 64)
	for rows.Next() {
		var c domain.Currency
		if err = rows.Scan(&c.Code, &c.Name, &c.Nominal); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies[c.Code] = c
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func (r *CurrencyRepository) Insert(ctx context.Context, currency domain.Currency) error {
	const q = `insert into currencies (code, name, nominal) values ($1, $2, $3);`

	_, err := r.pool.Exec(ctx, q, currency.Code, currency.Name, currency.Nominal)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCurrencyExists
		}
		return fmt.Errorf("failed to insert currency %q: %w", currency.Code, err)
	}
	return nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

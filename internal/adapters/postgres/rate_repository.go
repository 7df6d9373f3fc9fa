package postgres

import (
	"context"
	"fmt"
	"time"

	"cbrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

func (r *RateRepository) ListDates(ctx context.Context) (map[domain.Date]struct{}, error) {
	const q = `select distinct rate_date from rates;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[domain.Date]struct{}, 16)
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan rate date: %w", err)
		}
		dates[domain.DateOf(d)] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate dates: %w", err)
	}
	return dates, nil
}

func (r *RateRepository) HasDate(ctx context.Context, date domain.Date) (bool, error) {
	const q = `select exists (select 1 from rates where rate_date = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, date.Time()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rate date %s: %w", date, err)
	}
	return exists, nil
}

// InsertBatch writes all records for one date in a single transaction,
// so a day is either fully persisted or not at all. A (code, rate_date)
// collision surfaces as domain.ErrDuplicateRates.
func (r *RateRepository) InsertBatch(ctx context.Context, records []domain.RateRecord) error {
	if len(records) == 0 {
		return nil
	}

	const q = `insert into rates (code, rate_date, value) values ($1, $2, $3);`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(q, rec.Code, rec.Date.Time(), rec.Value)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err = results.Exec(); err != nil {
			_ = results.Close()
			if isUniqueViolation(err) {
				return domain.ErrDuplicateRates
			}
			return fmt.Errorf("failed to insert rates batch: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to close rates batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rates batch: %w", err)
	}
	return nil
}

func (r *RateRepository) GetForDate(ctx context.Context, date domain.Date) ([]domain.RateView, error) {
	const q = `
		select r.code, c.name, c.nominal, r.rate_date, r.value
		from rates r join currencies c on c.code = r.code
		where r.rate_date = $1
		order by r.code;
	`

	rows, err := r.pool.Query(ctx, q, date.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for date %s: %w", date, err)
	}
	defer rows.Close()

	return scanRateViews(rows)
}

// GetWeekly returns one currency's quotes for dates within seven
// calendar days back from since, inclusive, most recent first.
func (r *RateRepository) GetWeekly(ctx context.Context, code string, since domain.Date) ([]domain.RateRecord, error) {
	const q = `
		select code, rate_date, value
		from rates
		where code = $1 and rate_date >= $2
		order by rate_date desc;
	`

	from := since.AddDays(-7)
	rows, err := r.pool.Query(ctx, q, code, from.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly rates for %q: %w", code, err)
	}
	defer rows.Close()

	records := make([]domain.RateRecord, 0, 8)
	for rows.Next() {
		var (
			rec domain.RateRecord
			d   time.Time
		)
		if err = rows.Scan(&rec.Code, &d, &rec.Value); err != nil {
			return nil, fmt.Errorf("failed to scan weekly rate: %w", err)
		}
		rec.Date = domain.DateOf(d)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly rates: %w", err)
	}
	return records, nil
}

func scanRateViews(rows pgx.Rows) ([]domain.RateView, error) {
	views := make([]domain.RateView, 0, 64)
	for rows.Next() {
		var (
			v domain.RateView
			d time.Time
		)
		if err := rows.Scan(&v.Code, &v.Name, &v.Nominal, &d, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rate view: %w", err)
		}
		v.Date = domain.DateOf(d)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate views: %w", err)
	}
	return views, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

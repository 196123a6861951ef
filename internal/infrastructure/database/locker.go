package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubvenue/internal/domain"
	"clubvenue/internal/ports/output"
)

var _ output.VenueLocker = (*Locker)(nil)

// venueLockSpace occupies the high 16 bits of every venue advisory key.
const venueLockSpace int64 = 0x5645 << 48

// venueLockKey maps a venue id onto the single-bigint advisory key space.
// Ids are bigserial, so the low 48 bits are plenty.
func venueLockKey(venueID uint) int64 {
	return venueLockSpace | int64(uint64(venueID)&(1<<48-1))
}

// Locker runs a unit of work in one transaction, optionally holding a
// transaction-scoped advisory lock on a venue so that writers of one venue's
// bookings are serialized.
type Locker struct {
	pool *pgxpool.Pool
}

func NewLocker(pool *pgxpool.Pool) *Locker {
	return &Locker{pool: pool}
}

func (l *Locker) WithVenueLock(ctx context.Context, venueID uint, fn func(ctx context.Context) error) error {
	if venueID == 0 {
		return fmt.Errorf("lock venue: %w", domain.ErrVenueNotFound)
	}
	return l.run(ctx, fmt.Sprintf("venue %d", venueID), func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, venueLockKey(venueID)); err != nil {
			return mapError("lock venue", err, nil)
		}
		return fn(ctx)
	})
}

func (l *Locker) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.run(ctx, "transaction", func(ctx context.Context, _ pgx.Tx) error {
		return fn(ctx)
	})
}

// run joins the transaction already carried by ctx, or begins and commits a new one.
func (l *Locker) run(ctx context.Context, what string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if tx, ok := txFrom(ctx); ok {
		return fn(ctx, tx)
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err, nil)
	}
	defer func() {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Printf("⚠️ Rollback failed: %v", rbErr)
		}
	}()

	if err := fn(withTx(ctx, tx), tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit "+what, err, nil)
	}
	return nil
}

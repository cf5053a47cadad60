package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/infra/readstore"
	"redemption-service/internal/infra/repository"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) *PostgresUoW {
	return &PostgresUoW{pool: pool}
}

// Within runs fn in a ReadCommitted transaction. Redemptions of one code
// serialize on its row lock, so stronger isolation is unnecessary.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return newCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return infra.WrapRepoErr("begin transaction", errs.Mark(err, errTransactionBegin))
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(errs.Mark(err, errMaxRetriesExceeded), errs.ErrStorageUnavailable)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// mask the high bit so the conversion stays positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	codeRepo        shared.CodeRepository
	ledgerRepo      shared.LedgerRepository
	attributionRepo shared.AttributionRepository
	outboxRepo      shared.OutboxRepository
}

func (t *pgTx) Codes() shared.CodeRepository {
	if t.codeRepo == nil {
		t.codeRepo = repository.NewCodeRepository(t.dbtx)
	}
	return t.codeRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Attributions() shared.AttributionRepository {
	if t.attributionRepo == nil {
		t.attributionRepo = repository.NewAttributionRepository(t.dbtx)
	}
	return t.attributionRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.dbtx)
	}
	return t.outboxRepo
}

const (
	staleFirstPageSQL = `
SELECT reserved_at, id FROM redemption_ledger
WHERE status = 'RESERVED' AND reserved_at < $1
ORDER BY reserved_at, id
LIMIT $2`

	staleKeysetSQL = `
SELECT reserved_at, id FROM redemption_ledger
WHERE status = 'RESERVED' AND reserved_at < $1 AND (reserved_at, id) > ($3, $4)
ORDER BY reserved_at, id
LIMIT $2`
)

type commandReads struct {
	dbtx   db.DBTX
	codes  *readstore.CodeReadStore
	ledger *repository.LedgerRepository
}

func newCommandReads(dbtx db.DBTX) *commandReads {
	return &commandReads{
		dbtx:   dbtx,
		codes:  readstore.NewCodeReadStore(dbtx),
		ledger: repository.NewLedgerRepository(dbtx),
	}
}

func (r *commandReads) CodeByCode(ctx context.Context, code string) (*redeemable.Code, error) {
	view, err := r.codes.FindByCode(ctx, redeemable.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	return view.Domain()
}

func (r *commandReads) Usage(ctx context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	return r.codes.Usage(ctx, codeID, identityID)
}

func (r *commandReads) EntryByID(ctx context.Context, id uuid.UUID) (*redemption.Entry, error) {
	return r.ledger.Get(ctx, id)
}

func (r *commandReads) StaleReservations(ctx context.Context, cutoff time.Time, after *shared.StaleKey, limit int) ([]shared.StaleKey, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.dbtx.Query(ctx, staleFirstPageSQL, cutoff, limit)
	} else {
		rows, err = r.dbtx.Query(ctx, staleKeysetSQL, cutoff, limit, after.ReservedAt, after.ID)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale reservations", err)
	}
	defer rows.Close()

	var keys []shared.StaleKey
	for rows.Next() {
		var k shared.StaleKey
		if err := rows.Scan(&k.ReservedAt, &k.ID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stale reservation", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stale reservations", err)
	}
	return keys, nil
}

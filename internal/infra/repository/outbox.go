package repository

import (
	"context"
	"encoding/json"
	"time"

	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/infra"
	"redemption-service/internal/infra/db"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	appendOutboxSQL = `
INSERT INTO audit_outbox (id, action, resource, entry_id, code_id, identity_id, payload, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	claimOutboxSQL = `
SELECT payload, attempts FROM audit_outbox
WHERE published_at IS NULL
ORDER BY occurred_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED`

	markOutboxPublishedSQL = `UPDATE audit_outbox SET published_at = $2 WHERE id = ANY($1)`
	markOutboxFailedSQL    = `UPDATE audit_outbox SET attempts = attempts + 1, last_error = $2 WHERE id = ANY($1)`
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) Append(ctx context.Context, ev redemption.AuditEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return infra.WrapRepoErr("failed to encode audit event", err)
	}
	_, err = r.db.Exec(ctx, appendOutboxSQL,
		ev.ID, string(ev.Action), string(ev.Resource), ev.EntryID, ev.CodeID, ev.IdentityID, payload, ev.OccurredAt)
	if err != nil {
		return infra.WrapRepoErr("failed to append audit event", err)
	}
	return nil
}

func (r *OutboxRepository) ClaimUnpublished(ctx context.Context, limit int) ([]shared.OutboxRecord, error) {
	rows, err := r.db.Query(ctx, claimOutboxSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim audit events", err)
	}
	defer rows.Close()

	var records []shared.OutboxRecord
	for rows.Next() {
		var (
			payload []byte
			rec     shared.OutboxRecord
		)
		if err := rows.Scan(&payload, &rec.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit event", err)
		}
		if err := json.Unmarshal(payload, &rec.Event); err != nil {
			return nil, infra.WrapRepoErr("failed to decode audit event", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit events", err)
	}
	return records, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, markOutboxPublishedSQL, ids, at); err != nil {
		return infra.WrapRepoErr("failed to mark audit events published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, markOutboxFailedSQL, ids, reason); err != nil {
		return infra.WrapRepoErr("failed to record audit publish failure", err)
	}
	return nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/metrics"
	"redemption-service/internal/pkg/tracing"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultReservationTTL = 15 * time.Minute

type ReserveInput struct {
	Code        string
	IdentityID  uuid.UUID
	ContextID   string
	OrderAmount *int64
}

// Reservation is the handle returned to the caller of Reserve.
type Reservation struct {
	ID            uuid.UUID
	CodeID        uuid.UUID
	Code          string
	Kind          redeemable.Kind
	IdentityID    uuid.UUID
	ContextID     string
	Status        redemption.Status
	AmountApplied int64
	ReservedAt    time.Time
	DecidedAt     *time.Time
	ExpiresAt     time.Time
}

type ReserveResult struct {
	Verdict     eligibility.Verdict
	Reservation *Reservation
}

type RedemptionCommands interface {
	Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error)
	Confirm(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Release(ctx context.Context, id uuid.UUID) (*Reservation, error)
	// Expire is reserved for the reaper.
	Expire(ctx context.Context, id uuid.UUID) (*Reservation, error)
}

type Coordinator struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	ttl      time.Duration
	stats    shared.StatsInvalidator
	codes    shared.CodeInvalidator
	recorder metrics.Recorder
	tracer   trace.Tracer
}

type CoordinatorDeps struct {
	UoW      shared.UnitOfWork
	Clock    clock.Clock
	TTL      time.Duration
	Stats    shared.StatsInvalidator
	Codes    shared.CodeInvalidator
	Recorder metrics.Recorder
}

func NewCoordinator(deps CoordinatorDeps) *Coordinator {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Coordinator{
		uow:      deps.UoW,
		clock:    deps.Clock,
		ttl:      ttl,
		stats:    deps.Stats,
		codes:    deps.Codes,
		recorder: recorder,
		tracer:   tracing.Tracer("coordinator"),
	}
}

func (c *Coordinator) TTL() time.Duration {
	return c.ttl
}

func (c *Coordinator) Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	ctx, span := c.tracer.Start(ctx, "redemption.reserve")
	defer span.End()

	if in.IdentityID == uuid.Nil {
		return nil, errs.Mark(redemption.ErrMissingIdentity, errs.ErrInvalidInput)
	}
	if in.OrderAmount != nil && *in.OrderAmount < 0 {
		return nil, errs.Wrap(errs.ErrInvalidInput, "order amount cannot be negative")
	}
	normalized := redeemable.NormalizeCode(in.Code)
	span.SetAttributes(attribute.String("redemption.code", normalized))

	var result ReserveResult
	kind := "unknown"
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = ReserveResult{}

		code, err := tx.Codes().LockByCode(ctx, normalized)
		if err != nil {
			if errs.Is(err, errs.ErrCodeNotFound) {
				result.Verdict = eligibility.Ineligible(eligibility.ReasonNotFound)
				return nil
			}
			return err
		}
		kind = code.Kind().String()

		usage, err := tx.Ledger().Usage(ctx, code.ID(), in.IdentityID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		verdict := eligibility.Evaluate(code, usage, eligibility.Context{
			IdentityID:  in.IdentityID,
			OrderAmount: in.OrderAmount,
			Now:         now,
		})
		result.Verdict = verdict
		if !verdict.Eligible {
			return nil
		}

		entry, err := redemption.NewReservation(uuid.New(), code, in.IdentityID, in.ContextID, verdict.Amount, now)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		if err := tx.Ledger().Insert(ctx, entry); err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, redemption.NewAuditEvent(uuid.New(), entry, code.Code(), now)); err != nil {
			return err
		}

		result.Reservation = c.toReservation(entry, code.Code())
		return nil
	})
	if err != nil {
		// The referral index caught a concurrent signup on another code.
		if errs.Is(err, errs.ErrIdentityAttributed) {
			verdict := eligibility.Ineligible(eligibility.ReasonAlreadyAttributed)
			c.recorder.ReservationOutcome(string(redeemable.KindReferral), verdict.Reason.String())
			return &ReserveResult{Verdict: verdict}, nil
		}
		recordSpanError(span, err)
		return nil, err
	}

	if result.Reservation != nil {
		span.SetAttributes(attribute.String("redemption.id", result.Reservation.ID.String()))
		c.recorder.ReservationOutcome(string(result.Reservation.Kind), "reserved")
		slog.InfoContext(ctx, "code reserved",
			"reservation_id", result.Reservation.ID,
			"code", result.Reservation.Code,
			"identity_id", in.IdentityID,
			"amount", result.Reservation.AmountApplied)
	} else {
		span.SetAttributes(attribute.String("redemption.reason", result.Verdict.Reason.String()))
		c.recorder.ReservationOutcome(kind, result.Verdict.Reason.String())
		slog.InfoContext(ctx, "code ineligible",
			"code", normalized,
			"identity_id", in.IdentityID,
			"reason", result.Verdict.Reason)
	}
	return &result, nil
}

func (c *Coordinator) Confirm(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return c.transition(ctx, id, redemption.StatusConfirmed)
}

func (c *Coordinator) Release(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return c.transition(ctx, id, redemption.StatusReleased)
}

func (c *Coordinator) Expire(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return c.transition(ctx, id, redemption.StatusExpired)
}

type transitionResult struct {
	reservation *Reservation
	outcome     redemption.Outcome
	sellerID    uuid.UUID
}

func (c *Coordinator) transition(ctx context.Context, id uuid.UUID, target redemption.Status) (*Reservation, error) {
	ctx, span := c.tracer.Start(ctx, "redemption."+spanSuffix(target),
		trace.WithAttributes(attribute.String("redemption.id", id.String())))
	defer span.End()

	var res transitionResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res = transitionResult{}

		entry, err := tx.Ledger().Get(ctx, id)
		if err != nil {
			return err
		}
		// Lock order: code row first, then the ledger row through the guarded update.
		code, err := tx.Codes().LockByID(ctx, entry.CodeID())
		if err != nil {
			return err
		}
		// Re-read under the code lock; a concurrent transition may have committed.
		if entry, err = tx.Ledger().Get(ctx, id); err != nil {
			return err
		}

		res.outcome = redemption.Decide(entry.Status(), target)
		switch res.outcome {
		case redemption.OutcomeNoop:
			res.reservation = c.toReservation(entry, code.Code())
			return nil
		case redemption.OutcomeConflict:
			return errs.Wrapf(errs.ErrConflictingTransition, "%s -> %s", entry.Status(), target)
		}

		now := c.clock.Now()
		if target == redemption.StatusExpired && !entry.IsStale(now, c.ttl) {
			return errs.ErrNotStale
		}

		changed, err := tx.Ledger().Transition(ctx, id, redemption.StatusReserved, target, now)
		if err != nil {
			return err
		}
		if !changed {
			return errs.Wrap(errs.ErrConflictingTransition, "entry changed under the code lock")
		}
		if err := entry.Transition(target, now); err != nil {
			return errs.Mark(err, errs.ErrConflictingTransition)
		}

		if target == redemption.StatusConfirmed {
			if err := tx.Codes().IncrementConfirmed(ctx, code.ID()); err != nil {
				return err
			}
			if code.Kind() == redeemable.KindReferral {
				res.sellerID = code.SellerID()
				if err := tx.Attributions().Insert(ctx, shared.Attribution{
					IdentityID:   entry.IdentityID(),
					CodeID:       code.ID(),
					SellerID:     code.SellerID(),
					EntryID:      entry.ID(),
					AttributedAt: now,
				}); err != nil {
					return err
				}
			}
		}

		if err := tx.Outbox().Append(ctx, redemption.NewAuditEvent(uuid.New(), entry, code.Code(), now)); err != nil {
			return err
		}

		res.reservation = c.toReservation(entry, code.Code())
		return nil
	})
	if err != nil {
		outcome := "error"
		if errs.Is(err, errs.ErrConflictingTransition) {
			outcome = "conflict"
		}
		c.recorder.TransitionOutcome(string(target), outcome)
		recordSpanError(span, err)
		return nil, err
	}

	if res.outcome == redemption.OutcomeNoop {
		c.recorder.TransitionOutcome(string(target), "noop")
		slog.DebugContext(ctx, "ledger transition already applied",
			"reservation_id", id,
			"status", res.reservation.Status)
		return res.reservation, nil
	}

	c.recorder.TransitionOutcome(string(target), "applied")
	slog.InfoContext(ctx, "ledger transition applied",
		"reservation_id", id,
		"code", res.reservation.Code,
		"status", target)

	if target == redemption.StatusConfirmed {
		c.invalidateCaches(ctx, res.reservation.Code, res.sellerID)
	}
	return res.reservation, nil
}

// Cache invalidation runs after commit; failures only delay freshness until
// the cache TTL lapses.
func (c *Coordinator) invalidateCaches(ctx context.Context, code string, sellerID uuid.UUID) {
	if c.codes != nil {
		if err := c.codes.InvalidateCode(ctx, code); err != nil {
			slog.WarnContext(ctx, "failed to invalidate code cache", "code", code, "error", err.Error())
		}
	}
	if c.stats != nil && sellerID != uuid.Nil {
		if err := c.stats.InvalidateSeller(ctx, sellerID); err != nil {
			slog.WarnContext(ctx, "failed to invalidate seller stats", "seller_id", sellerID, "error", err.Error())
		}
	}
}

func (c *Coordinator) toReservation(e *redemption.Entry, code string) *Reservation {
	return &Reservation{
		ID:            e.ID(),
		CodeID:        e.CodeID(),
		Code:          code,
		Kind:          e.Kind(),
		IdentityID:    e.IdentityID(),
		ContextID:     e.ContextID(),
		Status:        e.Status(),
		AmountApplied: e.AmountApplied(),
		ReservedAt:    e.ReservedAt(),
		DecidedAt:     e.DecidedAt(),
		ExpiresAt:     e.ExpiresAt(c.ttl),
	}
}

func spanSuffix(target redemption.Status) string {
	switch target {
	case redemption.StatusConfirmed:
		return "confirm"
	case redemption.StatusReleased:
		return "release"
	default:
		return "expire"
	}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

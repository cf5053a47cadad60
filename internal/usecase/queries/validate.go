package queries

import (
	"context"
	"log/slog"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type ValidateInput struct {
	Code        string
	IdentityID  uuid.UUID
	OrderAmount *int64
}

type ValidateResult struct {
	Verdict eligibility.Verdict
	Code    *CodeView
}

type CodeQueries interface {
	Lookup(ctx context.Context, code string) (*CodeView, error)
	// Validate is read-only and advisory; Reserve re-evaluates under lock.
	Validate(ctx context.Context, in ValidateInput) (*ValidateResult, error)
}

type codeQueriesImpl struct {
	store CodeReadStore
	cache CodeCache
	clock clock.Clock
}

func NewCodeQueries(store CodeReadStore, cache CodeCache, clk clock.Clock) CodeQueries {
	return &codeQueriesImpl{store: store, cache: cache, clock: clk}
}

func (q *codeQueriesImpl) Lookup(ctx context.Context, code string) (*CodeView, error) {
	normalized := redeemable.NormalizeCode(code)
	if normalized == "" {
		return nil, errs.ErrCodeNotFound
	}

	if q.cache != nil {
		if v, ok, err := q.cache.GetCode(ctx, normalized); err != nil {
			slog.WarnContext(ctx, "code cache read failed", "code", normalized, "error", err.Error())
		} else if ok {
			return v, nil
		}
	}

	v, err := q.store.FindByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.SetCode(ctx, v); err != nil {
			slog.WarnContext(ctx, "code cache write failed", "code", normalized, "error", err.Error())
		}
	}
	return v, nil
}

func (q *codeQueriesImpl) fresh(ctx context.Context, code string) (*CodeView, error) {
	normalized := redeemable.NormalizeCode(code)
	if normalized == "" {
		return nil, errs.ErrCodeNotFound
	}
	return q.store.FindByCode(ctx, normalized)
}

func (q *codeQueriesImpl) Validate(ctx context.Context, in ValidateInput) (*ValidateResult, error) {
	if in.IdentityID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "identity id is required")
	}
	if in.OrderAmount != nil && *in.OrderAmount < 0 {
		return nil, errs.Wrap(errs.ErrInvalidInput, "order amount cannot be negative")
	}

	// Verdicts read the row directly; a cached view may predate a confirm.
	view, err := q.fresh(ctx, in.Code)
	if err != nil {
		if errs.Is(err, errs.ErrCodeNotFound) {
			return &ValidateResult{Verdict: eligibility.Ineligible(eligibility.ReasonNotFound)}, nil
		}
		return nil, err
	}

	code, err := view.Domain()
	if err != nil {
		return nil, errs.Wrap(err, "rebuild code from view")
	}

	usage, err := q.store.Usage(ctx, code.ID(), in.IdentityID)
	if err != nil {
		return nil, err
	}

	verdict := eligibility.Evaluate(code, usage, eligibility.Context{
		IdentityID:  in.IdentityID,
		OrderAmount: in.OrderAmount,
		Now:         q.clock.Now(),
	})
	return &ValidateResult{Verdict: verdict, Code: view}, nil
}

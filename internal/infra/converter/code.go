package converter

import (
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/pgconv"
	"redemption-service/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const CodeColumns = `id, code, kind, is_active, starts_at, ends_at, max_uses, user_max_uses, current_uses,
	discount_type, discount_value, min_amount, max_amount, owner_seller_id, created_at`

type CodeRow struct {
	ID            uuid.UUID
	Code          string
	Kind          string
	IsActive      bool
	StartsAt      pgtype.Timestamptz
	EndsAt        pgtype.Timestamptz
	MaxUses       pgtype.Int8
	UserMaxUses   pgtype.Int8
	CurrentUses   int64
	DiscountType  pgtype.Text
	DiscountValue pgtype.Int8
	MinAmount     pgtype.Int8
	MaxAmount     pgtype.Int8
	OwnerSellerID pgtype.UUID
	CreatedAt     pgtype.Timestamptz
}

// ScanCode reads one row selected with CodeColumns.
func ScanCode(row pgx.Row) (CodeRow, error) {
	var r CodeRow
	err := row.Scan(
		&r.ID, &r.Code, &r.Kind, &r.IsActive, &r.StartsAt, &r.EndsAt, &r.MaxUses, &r.UserMaxUses, &r.CurrentUses,
		&r.DiscountType, &r.DiscountValue, &r.MinAmount, &r.MaxAmount, &r.OwnerSellerID, &r.CreatedAt,
	)
	return r, err
}

func (r CodeRow) ToParams() redeemable.Params {
	p := redeemable.Params{
		ID:          r.ID,
		Code:        r.Code,
		Kind:        redeemable.Kind(r.Kind),
		IsActive:    r.IsActive,
		StartsAt:    ptr.TimeFromPgtype(r.StartsAt),
		EndsAt:      ptr.TimeFromPgtype(r.EndsAt),
		MaxUses:     ptr.Int64FromPgtype(r.MaxUses),
		UserMaxUses: ptr.Int64FromPgtype(r.UserMaxUses),
		CurrentUses: r.CurrentUses,
		CreatedAt:   pgconv.TimeFromPgtype(r.CreatedAt),
	}
	if r.DiscountType.Valid {
		p.Coupon = &redeemable.CouponRule{
			DiscountType:  redeemable.DiscountType(r.DiscountType.String),
			DiscountValue: ptr.Coalesce(ptr.Int64FromPgtype(r.DiscountValue), 0),
			MinAmount:     ptr.Coalesce(ptr.Int64FromPgtype(r.MinAmount), 0),
			MaxAmount:     ptr.Int64FromPgtype(r.MaxAmount),
		}
	}
	if seller := pgconv.UUIDPtrFromPgtype(r.OwnerSellerID); seller != nil {
		p.Referral = &redeemable.ReferralRule{OwnerSellerID: *seller}
	}
	return p
}

func (r CodeRow) ToDomain() (*redeemable.Code, error) {
	return redeemable.NewCode(r.ToParams())
}

// CodeInsertArgs orders a code's values for CodeColumns.
func CodeInsertArgs(c *redeemable.Code) []any {
	var (
		discountType                  pgtype.Text
		discountValue, minAmt, maxAmt pgtype.Int8
		seller                        pgtype.UUID
	)
	if rule := c.Coupon(); rule != nil {
		discountType = pgconv.StringToPgtype(string(rule.DiscountType))
		discountValue = pgconv.Int64PtrToPgtype(&rule.DiscountValue)
		minAmt = pgconv.Int64PtrToPgtype(&rule.MinAmount)
		maxAmt = pgconv.Int64PtrToPgtype(rule.MaxAmount)
	}
	if rule := c.Referral(); rule != nil {
		seller = pgconv.UUIDToPgtype(rule.OwnerSellerID)
	}
	return []any{
		c.ID(), c.Code(), string(c.Kind()), c.IsActive(),
		pgconv.TimePtrToPgtype(c.StartsAt()), pgconv.TimePtrToPgtype(c.EndsAt()),
		pgconv.Int64PtrToPgtype(c.MaxUses()), pgconv.Int64PtrToPgtype(c.UserMaxUses()), c.CurrentUses(),
		discountType, discountValue, minAmt, maxAmt, seller, pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

const EntryColumns = `id, code_id, kind, identity_id, context_id, status, amount_applied, reserved_at, decided_at`

func ScanEntry(row pgx.Row) (*redemption.Entry, error) {
	var (
		p         redemption.EntryParams
		kind      string
		status    string
		decidedAt pgtype.Timestamptz
	)
	if err := row.Scan(&p.ID, &p.CodeID, &kind, &p.IdentityID, &p.ContextID, &status, &p.AmountApplied, &p.ReservedAt, &decidedAt); err != nil {
		return nil, err
	}
	p.Kind = redeemable.Kind(kind)
	p.Status = redemption.Status(status)
	p.DecidedAt = ptr.TimeFromPgtype(decidedAt)
	return redemption.Restore(p), nil
}

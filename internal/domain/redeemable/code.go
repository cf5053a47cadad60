package redeemable

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCode           = errors.New("code cannot be empty")
	ErrInvalidKind         = errors.New("kind must be COUPON or REFERRAL")
	ErrInvalidWindow       = errors.New("startsAt must not be after endsAt")
	ErrInvalidCap          = errors.New("usage caps must be positive")
	ErrUsesExceedCap       = errors.New("current uses exceed the global cap")
	ErrNegativeUses        = errors.New("current uses cannot be negative")
	ErrMissingCouponRule   = errors.New("coupon code requires a coupon rule")
	ErrMissingReferralRule = errors.New("referral code requires an owner seller")
	ErrMixedRules          = errors.New("code cannot carry both coupon and referral rules")
)

type Kind string

const (
	KindCoupon   Kind = "COUPON"
	KindReferral Kind = "REFERRAL"
)

func (k Kind) IsValid() bool {
	return k == KindCoupon || k == KindReferral
}

func (k Kind) String() string {
	return string(k)
}

// NormalizeCode folds a user supplied code to its stored form.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Params is the persisted shape of a code. NewCode validates it.
type Params struct {
	ID          uuid.UUID
	Code        string
	Kind        Kind
	IsActive    bool
	StartsAt    *time.Time
	EndsAt      *time.Time
	MaxUses     *int64
	UserMaxUses *int64
	CurrentUses int64
	Coupon      *CouponRule
	Referral    *ReferralRule
	CreatedAt   time.Time
}

type Code struct {
	id          uuid.UUID
	code        string
	kind        Kind
	isActive    bool
	startsAt    *time.Time
	endsAt      *time.Time
	maxUses     *int64
	userMaxUses *int64
	currentUses int64
	coupon      *CouponRule
	referral    *ReferralRule
	createdAt   time.Time
}

func NewCode(p Params) (*Code, error) {
	code := NormalizeCode(p.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if !p.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if p.StartsAt != nil && p.EndsAt != nil && p.StartsAt.After(*p.EndsAt) {
		return nil, ErrInvalidWindow
	}
	if (p.MaxUses != nil && *p.MaxUses <= 0) || (p.UserMaxUses != nil && *p.UserMaxUses <= 0) {
		return nil, ErrInvalidCap
	}
	if p.CurrentUses < 0 {
		return nil, ErrNegativeUses
	}
	if p.MaxUses != nil && p.CurrentUses > *p.MaxUses {
		return nil, ErrUsesExceedCap
	}
	if p.Coupon != nil && p.Referral != nil {
		return nil, ErrMixedRules
	}

	switch p.Kind {
	case KindCoupon:
		if p.Coupon == nil {
			return nil, ErrMissingCouponRule
		}
		if err := p.Coupon.validate(); err != nil {
			return nil, err
		}
	case KindReferral:
		if p.Referral == nil || p.Referral.OwnerSellerID == uuid.Nil {
			return nil, ErrMissingReferralRule
		}
	}

	return &Code{
		id:          p.ID,
		code:        code,
		kind:        p.Kind,
		isActive:    p.IsActive,
		startsAt:    p.StartsAt,
		endsAt:      p.EndsAt,
		maxUses:     p.MaxUses,
		userMaxUses: p.UserMaxUses,
		currentUses: p.CurrentUses,
		coupon:      p.Coupon,
		referral:    p.Referral,
		createdAt:   p.CreatedAt,
	}, nil
}

// InWindow reports whether t falls inside the inclusive validity window.
func (c *Code) InWindow(t time.Time) bool {
	if c.startsAt != nil && t.Before(*c.startsAt) {
		return false
	}
	if c.endsAt != nil && t.After(*c.endsAt) {
		return false
	}
	return true
}

// HasCapacity reports whether another unit may be held given the live reserved count.
func (c *Code) HasCapacity(reserved int64) bool {
	if c.maxUses == nil {
		return true
	}
	return c.currentUses+reserved < *c.maxUses
}

// AllowsIdentity reports whether an identity holding active entries may take one more.
func (c *Code) AllowsIdentity(active int64) bool {
	if c.userMaxUses == nil {
		return true
	}
	return active < *c.userMaxUses
}

// SellerID returns the credited seller for referral codes, uuid.Nil otherwise.
func (c *Code) SellerID() uuid.UUID {
	if c.referral == nil {
		return uuid.Nil
	}
	return c.referral.OwnerSellerID
}

func (c *Code) Params() Params {
	return Params{
		ID:          c.id,
		Code:        c.code,
		Kind:        c.kind,
		IsActive:    c.isActive,
		StartsAt:    c.startsAt,
		EndsAt:      c.endsAt,
		MaxUses:     c.maxUses,
		UserMaxUses: c.userMaxUses,
		CurrentUses: c.currentUses,
		Coupon:      c.coupon,
		Referral:    c.referral,
		CreatedAt:   c.createdAt,
	}
}

func (c *Code) ID() uuid.UUID           { return c.id }
func (c *Code) Code() string            { return c.code }
func (c *Code) Kind() Kind              { return c.kind }
func (c *Code) IsActive() bool          { return c.isActive }
func (c *Code) StartsAt() *time.Time    { return c.startsAt }
func (c *Code) EndsAt() *time.Time      { return c.endsAt }
func (c *Code) MaxUses() *int64         { return c.maxUses }
func (c *Code) UserMaxUses() *int64     { return c.userMaxUses }
func (c *Code) CurrentUses() int64      { return c.currentUses }
func (c *Code) Coupon() *CouponRule     { return c.coupon }
func (c *Code) Referral() *ReferralRule { return c.referral }
func (c *Code) CreatedAt() time.Time    { return c.createdAt }

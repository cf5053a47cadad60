package response

import (
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VerdictResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
	Discount int64  `json:"discount"`
}

func FromVerdict(v eligibility.Verdict) *VerdictResponse {
	return &VerdictResponse{
		Eligible: v.Eligible,
		Reason:   v.Reason.String(),
		Message:  v.Message(),
		Discount: v.Amount,
	}
}

type CodeResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Kind          string     `json:"kind"`
	IsActive      bool       `json:"isActive"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
	MaxUses       *int64     `json:"maxUses,omitempty"`
	UserMaxUses   *int64     `json:"userMaxUses,omitempty"`
	CurrentUses   int64      `json:"currentUses"`
	DiscountType  *string    `json:"discountType,omitempty"`
	DiscountValue *int64     `json:"discountValue,omitempty"`
	MinAmount     *int64     `json:"minAmount,omitempty"`
	MaxAmount     *int64     `json:"maxAmount,omitempty"`
	OwnerSellerID *uuid.UUID `json:"ownerSellerId,omitempty"`
}

func FromCodeView(v *queries.CodeView) *CodeResponse {
	var res CodeResponse
	_ = copier.Copy(&res, v)
	return &res
}

type ValidateResponse struct {
	VerdictResponse
	Code *CodeResponse `json:"code,omitempty"`
}

func FromValidateResult(r *queries.ValidateResult) *ValidateResponse {
	res := &ValidateResponse{VerdictResponse: *FromVerdict(r.Verdict)}
	if r.Code != nil {
		res.Code = FromCodeView(r.Code)
	}
	return res
}

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	CodeID        uuid.UUID  `json:"codeId"`
	Code          string     `json:"code"`
	Kind          string     `json:"kind"`
	IdentityID    uuid.UUID  `json:"identityId"`
	ContextID     string     `json:"contextId"`
	Status        string     `json:"status"`
	AmountApplied int64      `json:"amountApplied"`
	ReservedAt    time.Time  `json:"reservedAt"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
}

func FromReservation(r *commands.Reservation) *ReservationResponse {
	var res ReservationResponse
	_ = copier.Copy(&res, r)
	return &res
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var res ReservationResponse
	_ = copier.Copy(&res, v)
	return &res
}

type ReferralCodeStatResponse struct {
	CodeID      uuid.UUID `json:"codeId"`
	Code        string    `json:"code"`
	IsActive    bool      `json:"isActive"`
	CurrentUses int64     `json:"currentUses"`
	MaxUses     *int64    `json:"maxUses,omitempty"`
}

type ReferralStatsResponse struct {
	SellerID          uuid.UUID                  `json:"sellerId"`
	TotalReferralUses int64                      `json:"totalReferralUses"`
	Codes             []ReferralCodeStatResponse `json:"codes"`
}

func FromReferralStats(s *queries.ReferralStats) *ReferralStatsResponse {
	var res ReferralStatsResponse
	_ = copier.Copy(&res, s)
	if res.Codes == nil {
		res.Codes = []ReferralCodeStatResponse{}
	}
	return &res
}

type SweepResponse struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func FromSweepReport(r commands.SweepReport) *SweepResponse {
	return &SweepResponse{
		Scanned: r.Scanned,
		Expired: r.Expired,
		Skipped: r.Skipped,
		Failed:  r.Failed,
	}
}

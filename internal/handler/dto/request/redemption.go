package request

import (
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type ValidateCodeRequest struct {
	Code        string    `json:"code" binding:"required,max=64"`
	IdentityID  uuid.UUID `json:"identityId" binding:"required"`
	OrderAmount *int64    `json:"orderAmount" binding:"omitempty,min=0"`
}

func (r *ValidateCodeRequest) ToInput() queries.ValidateInput {
	return queries.ValidateInput{
		Code:        r.Code,
		IdentityID:  r.IdentityID,
		OrderAmount: r.OrderAmount,
	}
}

type ReserveRequest struct {
	Code        string    `json:"code" binding:"required,max=64"`
	IdentityID  uuid.UUID `json:"identityId" binding:"required"`
	ContextID   string    `json:"contextId" binding:"max=128"`
	OrderAmount *int64    `json:"orderAmount" binding:"omitempty,min=0"`
}

func (r *ReserveRequest) ToInput() commands.ReserveInput {
	return commands.ReserveInput{
		Code:        r.Code,
		IdentityID:  r.IdentityID,
		ContextID:   r.ContextID,
		OrderAmount: r.OrderAmount,
	}
}

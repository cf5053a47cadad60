package api

import (
	"net/http"

	resdto "redemption-service/internal/handler/dto/response"
	"redemption-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	q queries.AttributionQueries
}

func NewSellerHandler(q queries.AttributionQueries) *SellerHandler {
	return &SellerHandler{q: q}
}

// @Summary Seller referral stats
// @Description Total confirmed referral uses across the seller's codes, with a per-code breakdown
// @Tags sellers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seller ID"
// @Success 200 {object} resdto.ReferralStatsResponse
// @Failure 400 {object} httperr.Response
// @Router /api/sellers/{id}/referral-stats [get]
func (h *SellerHandler) ReferralStats(c *gin.Context) {
	sellerID, ok := parseID(c)
	if !ok {
		return
	}
	stats, err := h.q.ReferralStats(c.Request.Context(), sellerID)
	if err != nil {
		abortWithFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReferralStats(stats))
}

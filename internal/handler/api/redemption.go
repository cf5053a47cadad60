package api

import (
	"context"
	"net/http"

	reqdto "redemption-service/internal/handler/dto/request"
	resdto "redemption-service/internal/handler/dto/response"
	"redemption-service/internal/handler/httperr"
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RedemptionHandler struct {
	cmds commands.RedemptionCommands
	q    queries.RedemptionQueries
}

func NewRedemptionHandler(cmds commands.RedemptionCommands, q queries.RedemptionQueries) *RedemptionHandler {
	return &RedemptionHandler{cmds: cmds, q: q}
}

// @Summary Reserve code
// @Description Atomically check eligibility and record a RESERVED ledger entry
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveRequest true "Reserve request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} resdto.VerdictResponse
// @Failure 503 {object} httperr.Response
// @Router /api/redemptions [post]
func (h *RedemptionHandler) Reserve(c *gin.Context) {
	var req reqdto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Reserve(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithFault(c, err)
		return
	}
	if !result.Verdict.Eligible {
		c.JSON(http.StatusUnprocessableEntity, resdto.FromVerdict(result.Verdict))
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(result.Reservation))
}

// @Summary Get reservation
// @Description Get a ledger entry by ID
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/redemptions/{id} [get]
func (h *RedemptionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Description Mark the reservation CONFIRMED once the order or signup committed. Idempotent.
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/redemptions/{id}/confirm [post]
func (h *RedemptionHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.Confirm)
}

// @Summary Release reservation
// @Description Return the reserved capacity after the order or signup failed. Idempotent.
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/redemptions/{id}/release [post]
func (h *RedemptionHandler) Release(c *gin.Context) {
	h.transition(c, h.cmds.Release)
}

func (h *RedemptionHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*commands.Reservation, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), id)
	if err != nil {
		abortWithFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

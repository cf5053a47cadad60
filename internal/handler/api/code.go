package api

import (
	"net/http"

	reqdto "redemption-service/internal/handler/dto/request"
	resdto "redemption-service/internal/handler/dto/response"
	"redemption-service/internal/handler/httperr"
	"redemption-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CodeHandler struct {
	q queries.CodeQueries
}

func NewCodeHandler(q queries.CodeQueries) *CodeHandler {
	return &CodeHandler{q: q}
}

// @Summary Validate code
// @Description Pre-flight eligibility check. Read-only; reserve decides again under lock.
// @Tags codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCodeRequest true "Validate request"
// @Success 200 {object} resdto.ValidateResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 503 {object} httperr.Response
// @Router /api/codes/validate [post]
func (h *CodeHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.q.Validate(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidateResult(result))
}

// @Summary Get code
// @Description Look up a code by its case-insensitive value
// @Tags codes
// @Produce json
// @Security BearerAuth
// @Param code path string true "Code"
// @Success 200 {object} resdto.CodeResponse
// @Failure 404 {object} httperr.Response
// @Router /api/codes/{code} [get]
func (h *CodeHandler) Get(c *gin.Context) {
	view, err := h.q.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithFault(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCodeView(view))
}

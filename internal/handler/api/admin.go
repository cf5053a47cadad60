package api

import (
	"log/slog"
	"net/http"

	resdto "redemption-service/internal/handler/dto/response"
	"redemption-service/internal/handler/middleware"
	"redemption-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reaper commands.ReaperCommands
}

func NewAdminHandler(reaper commands.ReaperCommands) *AdminHandler {
	return &AdminHandler{reaper: reaper}
}

// @Summary Sweep stale reservations
// @Description Expire every RESERVED entry older than the reservation TTL now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 403 {object} map[string]string
// @Router /api/admin/reaper/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	report, err := h.reaper.Sweep(c.Request.Context())
	if err != nil {
		abortWithFault(c, err)
		return
	}
	subjectID, _ := middleware.GetSubjectID(c)
	slog.InfoContext(c.Request.Context(), "manual reaper sweep",
		"subject_id", subjectID,
		"expired", report.Expired,
		"skipped", report.Skipped,
		"failed", report.Failed)
	c.JSON(http.StatusOK, resdto.FromSweepReport(report))
}

package api

import (
	"net/http"

	"redemption-service/internal/handler/httperr"
	"redemption-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithFault maps a use-case fault to its status. Only 503 invites a retry.
func abortWithFault(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, errs.ErrCodeNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Code not found", nil)
	case errs.Is(err, errs.ErrConflictingTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already settled", nil)
	case errs.Is(err, errs.ErrNotStale):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation has not expired yet", nil)
	case errs.Is(err, errs.ErrStorageUnavailable):
		c.Header("Retry-After", "1")
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Storage unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

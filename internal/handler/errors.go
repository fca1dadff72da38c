package handler

import (
	"errors"
	"net/http"

	"fopassistant/internal/exchange"
	"fopassistant/internal/logger"
	"fopassistant/internal/service"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without leaking the cause.
func respondError(c *gin.Context, err error) {
	var violationErr *service.ViolationError
	switch {
	case errors.As(err, &violationErr):
		details := make([]response.Detail, 0, len(violationErr.Violations))
		for _, v := range violationErr.Violations {
			details = append(details, response.Detail{Code: string(v), Message: v.Message()})
		}
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails(http.StatusBadRequest, "FOP group restrictions violated", details))
	case errors.Is(err, exchange.ErrRateUnavailable):
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity,
			"Exchange rate unavailable, please provide manual_rate: "+err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrMalformedInput):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		logger.L.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

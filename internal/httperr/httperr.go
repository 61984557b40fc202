package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalpoint/clinic-scheduler/internal/domain/availability"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Availability maps the engine's typed errors onto HTTP results.
// Bad input is the caller's fault; a failed read is retry-able and must
// stay distinguishable from "provider has no openings".
func Availability(c *gin.Context, err error) {
	var invalid *availability.InvalidInputError
	if errors.As(err, &invalid) {
		BadRequest(c, "invalid_input", invalid.Error())
		return
	}

	var access *availability.DataAccessError
	if errors.As(err, &access) {
		Write(c, http.StatusServiceUnavailable, "data_access_failed", "Could not load scheduling data. Try again.")
		return
	}

	Internal(c, "availability_failed", "Could not compute availability.")
}

package ui

import (
	"net/http"

	"nextgen/internal/errors"

	"github.com/gin-gonic/gin"
)

func statusForCode(code string) int {
	switch code {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "code"} with the status matching the error code
func (s *Server) respondError(c *gin.Context, err error) {
	if !errors.IsAppError(err) {
		err = errors.Wrap(err, "request failed")
	}
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}

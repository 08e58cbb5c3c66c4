package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ggirassol/myIntake-API/services"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the {msg} wire contract.
// Anything that is not an APIError is unexpected: log it, answer 500.
func respondError(c *gin.Context, err error) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"msg": apiErr.Msg})
		return
	}
	slog.Error("unhandled error", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
}

package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

// uintParam reads a positive integer path parameter, answering 400 otherwise.
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}

// optionalUintQuery reads an optional positive integer query parameter.
// Absent or zero means no filter.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	if value == 0 {
		return nil, true
	}
	id := uint(value)
	return &id, true
}

// respondError maps utils error classes to 404 or 500. Storage failures are
// logged and answered with the generic message only.
func respondError(ctx *appcontext.Context, c *gin.Context, message string, err error) {
	if utils.ErrNotFound.Has(err) {
		ctx.Logger.Info(message, zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.Logger.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"go.uber.org/zap"
)

func Healthz(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := ctx.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			ctx.Logger.Error("Database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

func AddRawFiles(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request []utils.RawFileInput
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		files, err := utils.AddRawFiles(ctx.DB, request)
		if err != nil {
			respondError(ctx, c, "Failed to add raw files", err)
			return
		}

		ids := make([]uint, 0, len(files))
		for _, file := range files {
			ids = append(ids, file.ID)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message":      "Raw files added successfully",
			"raw_file_ids": ids,
		})
	}
}

func GetRawFilesWithMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, ok := uintParam(c, "dataset_id")
		if !ok {
			return
		}

		files, err := utils.ListRawFilesWithMetadata(ctx.DB, datasetID)
		if err != nil {
			respondError(ctx, c, "Failed to get raw files with metadata", err)
			return
		}

		c.JSON(http.StatusOK, files)
	}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

func GetDatasets(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}
		datasetID, ok := optionalUintQuery(c, "dataset_id")
		if !ok {
			return
		}

		datasets, err := utils.ListDatasets(ctx.DB, projectID, datasetID)
		if err != nil {
			respondError(ctx, c, "Failed to get datasets", err)
			return
		}

		c.JSON(http.StatusOK, datasets)
	}
}

func CreateDataset(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createDatasetRequest struct {
			ProjectID uint   `json:"project_id" binding:"required"`
			Name      string `json:"name" binding:"required"`
		}

		var request createDatasetRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		dataset := entity.Dataset{
			ProjectID: request.ProjectID,
			Name:      request.Name,
		}

		if err := utils.CreateDataset(ctx.DB, &dataset); err != nil {
			respondError(ctx, c, "Failed to create dataset", err)
			return
		}

		c.JSON(http.StatusCreated, dataset)
	}
}

func GetDatasetWithMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		datasetID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}

		dataset, err := utils.GetDatasetWithMetadata(ctx.DB, datasetID, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get dataset with metadata", err)
			return
		}

		c.JSON(http.StatusOK, dataset)
	}
}

func AddDatasetMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type addMetadataRequest struct {
			DatasetID uint   `json:"dataset_id" binding:"required"`
			Key       string `json:"key" binding:"required"`
			Value     string `json:"value"`
		}

		var request addMetadataRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		row := entity.DatasetMetadata{
			DatasetID: request.DatasetID,
			Key:       request.Key,
			Value:     request.Value,
		}

		if err := utils.AddDatasetMetadata(ctx.DB, &row); err != nil {
			respondError(ctx, c, "Failed to add dataset metadata", err)
			return
		}

		c.JSON(http.StatusCreated, row)
	}
}

func UpdateDatasetSize(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request utils.SizeUpdate
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		metadata, err := utils.UpdateDatasetSize(ctx.DB, request)
		if err != nil {
			respondError(ctx, c, "Failed to update dataset size", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "metadata": metadata})
	}
}

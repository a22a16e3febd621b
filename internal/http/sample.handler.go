package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

func GetSamples(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, ok := optionalUintQuery(c, "patient_id")
		if !ok {
			return
		}

		samples, err := utils.ListSamples(ctx.DB, patientID)
		if err != nil {
			respondError(ctx, c, "Failed to get samples", err)
			return
		}

		c.JSON(http.StatusOK, samples)
	}
}

func GetSample(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sampleID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}

		sample, err := utils.GetSample(ctx.DB, sampleID, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get sample", err)
			return
		}

		c.JSON(http.StatusOK, sample)
	}
}

func CreateSample(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createSampleRequest struct {
			PatientID    uint   `json:"patient_id" binding:"required"`
			ExtSampleID  string `json:"ext_sample_id" binding:"required"`
			ExtSampleURL string `json:"ext_sample_url"`
		}

		var request createSampleRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		sample := entity.Sample{
			PatientID:    request.PatientID,
			ExtSampleID:  request.ExtSampleID,
			ExtSampleURL: request.ExtSampleURL,
		}

		if err := utils.CreateSample(ctx.DB, &sample); err != nil {
			respondError(ctx, c, "Failed to create sample", err)
			return
		}

		c.JSON(http.StatusCreated, sample)
	}
}

func AddSampleMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type addMetadataRequest struct {
			SampleID uint   `json:"sample_id" binding:"required"`
			Key      string `json:"key" binding:"required"`
			Value    string `json:"value"`
		}

		var request addMetadataRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		row := entity.SampleMetadata{
			SampleID: request.SampleID,
			Key:      request.Key,
			Value:    request.Value,
		}

		if err := utils.AddSampleMetadata(ctx.DB, &row); err != nil {
			respondError(ctx, c, "Failed to add sample metadata", err)
			return
		}

		c.JSON(http.StatusCreated, row)
	}
}

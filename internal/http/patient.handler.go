package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

func GetPatients(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}

		patients, err := utils.ListPatients(ctx.DB, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get patients", err)
			return
		}

		c.JSON(http.StatusOK, patients)
	}
}

func CreatePatient(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createPatientRequest struct {
			ProjectID       uint    `json:"project_id" binding:"required"`
			ExtPatientID    string  `json:"ext_patient_id" binding:"required"`
			ExtPatientURL   string  `json:"ext_patient_url"`
			PublicPatientID *string `json:"public_patient_id"`
		}

		var request createPatientRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		patient := entity.Patient{
			ProjectID:       request.ProjectID,
			ExtPatientID:    request.ExtPatientID,
			ExtPatientURL:   request.ExtPatientURL,
			PublicPatientID: request.PublicPatientID,
		}

		if err := utils.CreatePatient(ctx.DB, &patient); err != nil {
			respondError(ctx, c, "Failed to create patient", err)
			return
		}

		c.JSON(http.StatusCreated, patient)
	}
}

func GetPatientWithMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}

		patient, err := utils.GetPatientWithMetadata(ctx.DB, patientID, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get patient metadata", err)
			return
		}

		c.JSON(http.StatusOK, patient)
	}
}

func GetPatientWithSamples(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		projectID, ok := optionalUintQuery(c, "project_id")
		if !ok {
			return
		}

		patient, err := utils.GetPatientWithSamples(ctx.DB, patientID, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get patient with samples", err)
			return
		}

		c.JSON(http.StatusOK, patient)
	}
}

func AddPatientMetadata(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type addMetadataRequest struct {
			PatientID uint   `json:"patient_id" binding:"required"`
			Key       string `json:"key" binding:"required"`
			Value     string `json:"value"`
		}

		var request addMetadataRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		row := entity.PatientMetadata{
			PatientID: request.PatientID,
			Key:       request.Key,
			Value:     request.Value,
		}

		if err := utils.AddPatientMetadata(ctx.DB, &row); err != nil {
			respondError(ctx, c, "Failed to add patient metadata", err)
			return
		}

		c.JSON(http.StatusCreated, row)
	}
}

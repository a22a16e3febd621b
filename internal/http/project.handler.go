package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/kerem-kaynak/redmane/internal/utils"
	"go.uber.org/zap"
)

func GetProjects(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := utils.ListProjects(ctx.DB)
		if err != nil {
			respondError(ctx, c, "Failed to get projects", err)
			return
		}

		c.JSON(http.StatusOK, projects)
	}
}

func GetProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}

		project, err := utils.GetProject(ctx.DB, projectID)
		if err != nil {
			respondError(ctx, c, "Failed to get project", err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func CreateProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createProjectRequest struct {
			Name   string `json:"name" binding:"required"`
			Status string `json:"status"`
		}

		var request createProjectRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			ctx.Logger.Info("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		project := entity.Project{
			Name:   request.Name,
			Status: request.Status,
		}

		if err := utils.CreateProject(ctx.DB, &project); err != nil {
			respondError(ctx, c, "Failed to create project", err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func DeleteProject(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := uintParam(c, "id")
		if !ok {
			return
		}

		if err := utils.DeleteProject(ctx.DB, projectID); err != nil {
			respondError(ctx, c, "Failed to delete project", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Project deleted successfully"})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/supabase"
)

type FilesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewFilesHandler(dbClient *supabase.DatabaseClient) *FilesHandler {
	return &FilesHandler{
		dbClient: dbClient,
	}
}

// GetFile godoc
// @Summary     Get the uploaded spec file descriptor
// @Description Returns the stored file metadata for a project, including its storage URL
// @Tags        files
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.FileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/file [get]
func (h *FilesHandler) GetFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	file, err := h.dbClient.GetUploadedFile(projectID, userID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get file",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.FileResponse{
		ID:           file.ID.String(),
		ProjectID:    file.ProjectID.String(),
		OriginalName: file.OriginalName,
		StorageURL:   file.StorageURL,
		MimeType:     file.MimeType,
		SizeBytes:    file.SizeBytes,
		CreatedAt:    file.CreatedAt,
	})
}

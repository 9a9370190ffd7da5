package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/openrouter"
	"specdocs-backend/internal/supabase"
)

// Spec content sent to the model is capped so oversized uploads do not blow
// the prompt budget.
const maxPreviewSpecBytes = 16 << 10

type PreviewHandler struct {
	dbClient         *supabase.DatabaseClient
	storageClient    *supabase.StorageClient
	openrouterClient *openrouter.Client
	model            string
	logger           *logrus.Logger
}

func NewPreviewHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, openrouterClient *openrouter.Client, model string, logger *logrus.Logger) *PreviewHandler {
	return &PreviewHandler{
		dbClient:         dbClient,
		storageClient:    storageClient,
		openrouterClient: openrouterClient,
		model:            model,
		logger:           logger,
	}
}

// GeneratePreview godoc
// @Summary     Generate a documentation preview
// @Description Sends the stored spec file to the model and returns a short markdown preview
// @Description of the generated documentation.
// @Tags        preview
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.PreviewResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /projects/{project_id}/preview [post]
func (h *PreviewHandler) GeneratePreview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get project",
			Message: err.Error(),
		})
		return
	}

	file, err := h.dbClient.GetUploadedFile(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "spec file not found"})
		return
	}

	content, err := h.storageClient.DownloadSpec(file.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to download spec file",
			Message: err.Error(),
		})
		return
	}
	if len(content) > maxPreviewSpecBytes {
		content = content[:maxPreviewSpecBytes]
	}

	prompt := "Write a concise markdown documentation preview for the following " +
		string(project.FileType) + " API specification. Cover the purpose of the API " +
		"and its main endpoints. Specification:\n\n" + string(content)

	var markdown string
	err = h.openrouterClient.RetryWithBackoff(func() error {
		var err error
		markdown, err = h.openrouterClient.ChatCompletion(h.model, []openrouter.Message{
			{Role: "system", Content: "You are a technical writer generating API documentation."},
			{Role: "user", Content: prompt},
		})
		return err
	}, 3)
	if err != nil {
		h.logger.WithField("project_id", projectID.String()).WithError(err).Error("preview generation failed")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to generate preview",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PreviewResponse{
		ProjectID: projectID.String(),
		Model:     h.model,
		Markdown:  markdown,
	})
}

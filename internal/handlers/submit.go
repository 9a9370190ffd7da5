package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"specdocs-backend/internal/middleware"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/services"
)

type SubmitHandler struct {
	submission *services.SubmissionService
	logger     *logrus.Logger
}

func NewSubmitHandler(submission *services.SubmissionService, logger *logrus.Logger) *SubmitHandler {
	return &SubmitHandler{
		submission: submission,
		logger:     logger,
	}
}

// Submit godoc
// @Summary     Submit a spec file
// @Description Uploads an OpenAPI or Postman collection file and starts documentation generation.
// @Description The file type is detected from the content; the response includes the project id
// @Description to poll for status.
// @Tags        specs
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Spec file (.json, .yaml, .yml, .postman_collection)"
// @Success     200 {object} models.SubmitResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     415 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /specs [post]
func (h *SubmitHandler) Submit(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: "multipart form is nil",
		})
		return
	}

	var file *multipart.FileHeader
	for _, fieldName := range []string{"file", "spec", "document"} {
		if f := form.File[fieldName]; len(f) > 0 {
			file = f[0]
			break
		}
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "provide the spec file in a 'file' form field",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open file",
			Message: err.Error(),
		})
		return
	}
	content, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	project, subErr := h.submission.Submit(services.SubmissionInput{
		OwnerID:  userID,
		Filename: file.Filename,
		MimeType: file.Header.Get("Content-Type"),
		Size:     file.Size,
		Content:  content,
	})
	if subErr != nil {
		if subErr.Partial() {
			h.logger.WithFields(logrus.Fields{
				"user_id": userID.String(),
				"kind":    string(subErr.Kind),
			}).Warn("partial submission failure")
		}
		c.JSON(submissionStatusCode(subErr.Kind), models.ErrorResponse{
			Error:   string(subErr.Kind),
			Message: subErr.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		ProjectID: project.ID.String(),
		FileType:  string(project.FileType),
		Status:    string(project.Status),
	})
}

func submissionStatusCode(kind services.SubmissionErrorKind) int {
	switch kind {
	case services.ErrUnauthenticated:
		return http.StatusUnauthorized
	case services.ErrMissingFile:
		return http.StatusBadRequest
	case services.ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case services.ErrUnsupportedType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

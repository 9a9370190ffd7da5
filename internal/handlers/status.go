package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"specdocs-backend/internal/middleware"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/services"
)

type StatusHandler struct {
	poller *services.StatusPoller
}

func NewStatusHandler(poller *services.StatusPoller) *StatusHandler {
	return &StatusHandler{
		poller: poller,
	}
}

// GetStatus godoc
// @Summary     Poll project status
// @Description Returns the project and job status with an indicative progress value.
// @Description Progress is a display placeholder while processing, not a measurement.
// @Tags        status
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.StatusResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/status [get]
func (h *StatusHandler) GetStatus(c *gin.Context) {
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

	projectIDStr := c.Param("project_id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	snapshot, pollErr := h.poller.Poll(projectID, userID)
	if pollErr != nil {
		c.JSON(pollStatusCode(pollErr.Kind), models.ErrorResponse{
			Error:   string(pollErr.Kind),
			Message: pollErr.Error(),
		})
		return
	}

	response := models.StatusResponse{
		ProjectID: snapshot.Project.ID.String(),
		Status:    string(snapshot.Project.Status),
		Progress: models.ProgressInfo{
			Percentage: snapshot.ProgressPercentage,
			Stage:      snapshot.Stage,
		},
		UpdatedAt: snapshot.Project.UpdatedAt,
	}

	if snapshot.Job != nil {
		jobInfo := &models.JobInfo{
			ID:        snapshot.Job.ID.String(),
			Status:    string(snapshot.Job.Status),
			StartedAt: snapshot.Job.StartedAt,
		}
		if snapshot.Job.Error.Valid {
			jobInfo.Error = snapshot.Job.Error.String
		}
		if snapshot.Job.FinishedAt.Valid {
			finishedAt := snapshot.Job.FinishedAt.Time
			jobInfo.FinishedAt = &finishedAt
		}
		response.Job = jobInfo
	}

	c.JSON(http.StatusOK, response)
}

func pollStatusCode(kind services.PollErrorKind) int {
	switch kind {
	case services.ErrPollUnauthorized:
		return http.StatusUnauthorized
	case services.ErrPollNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

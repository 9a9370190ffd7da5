package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"specdocs-backend/internal/models"
)

type StatusSnapshot struct {
	Project            *models.Project
	Job                *models.Job
	ProgressPercentage int
	Stage              string
}

// StatusPoller serves status reads and performs the simulated completion.
// There is no background worker: a processing project whose job has been open
// longer than the threshold is promoted to ready as a side effect of the read.
// The promotion is monotonic and idempotent, so any number of concurrent
// pollers converge on the same terminal state.
type StatusPoller struct {
	records   RecordStore
	estimator ProgressEstimator
	threshold time.Duration
	now       func() time.Time
}

func NewStatusPoller(records RecordStore, estimator ProgressEstimator, threshold time.Duration) *StatusPoller {
	return &StatusPoller{
		records:   records,
		estimator: estimator,
		threshold: threshold,
		now:       time.Now,
	}
}

// Poll returns the current status of a project owned by ownerID. Projects
// owned by anyone else surface as not_found; their existence never leaks.
func (p *StatusPoller) Poll(projectID, ownerID uuid.UUID) (*StatusSnapshot, *PollError) {
	if ownerID == uuid.Nil {
		return nil, pollError(ErrPollUnauthorized, "owner identity is required", nil)
	}

	project, err := p.records.GetProject(projectID, ownerID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, pollError(ErrPollNotFound, "project not found", nil)
	}
	if err != nil {
		return nil, pollError(ErrPollStore, "failed to load project", err)
	}

	job, err := p.records.LatestJob(projectID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, pollError(ErrPollStore, "failed to load job", err)
	}

	now := p.now()
	if project.Status == models.ProjectProcessing && job != nil && now.Sub(job.StartedAt) > p.threshold {
		if _, err := p.records.CompleteProcessing(projectID, now); err != nil {
			return nil, pollError(ErrPollStore, "failed to promote project", err)
		}
		// Reflect the terminal state locally regardless of which poller won
		// the conditional update; the outcome is the same either way.
		project.Status = models.ProjectReady
		project.UpdatedAt = now
		job.Status = models.JobDone
		job.FinishedAt = sql.NullTime{Time: now, Valid: true}
	}

	snapshot := &StatusSnapshot{Project: project, Job: job}

	switch project.Status {
	case models.ProjectReady:
		snapshot.ProgressPercentage = 100
		snapshot.Stage = StageComplete
	case models.ProjectFailed:
		snapshot.ProgressPercentage = 0
		snapshot.Stage = StageFailed
	default:
		startedAt := project.CreatedAt
		if job != nil {
			startedAt = job.StartedAt
		}
		snapshot.ProgressPercentage, snapshot.Stage = p.estimator.Estimate(startedAt, now)
	}

	return snapshot, nil
}

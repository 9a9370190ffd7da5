package handlers_test

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/services"
)

type fakeObjectStore struct{}

func (f *fakeObjectStore) UploadSpec(userID, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	path := fmt.Sprintf("users/%s/projects/%s/%s", userID, projectID, filename)
	return path, "https://storage.test/" + path, nil
}

type fakeRecordStore struct {
	projects map[uuid.UUID]*models.Project
	jobs     map[uuid.UUID]*models.Job
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		projects: make(map[uuid.UUID]*models.Project),
		jobs:     make(map[uuid.UUID]*models.Job),
	}
}

func (f *fakeRecordStore) CreateProject(project *models.Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	f.projects[project.ID] = project
	return nil
}

func (f *fakeRecordStore) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	project, ok := f.projects[projectID]
	if !ok || project.UserID != userID {
		return nil, models.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeRecordStore) CreateUploadedFile(file *models.UploadedFile) error {
	file.CreatedAt = time.Now()
	return nil
}

func (f *fakeRecordStore) CreateJob(job *models.Job) error {
	job.CreatedAt = time.Now()
	f.jobs[job.ProjectID] = job
	return nil
}

func (f *fakeRecordStore) LatestJob(projectID uuid.UUID) (*models.Job, error) {
	job, ok := f.jobs[projectID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeRecordStore) CompleteProcessing(projectID uuid.UUID, finishedAt time.Time) (bool, error) {
	project, ok := f.projects[projectID]
	if !ok || project.Status != models.ProjectProcessing {
		return false, nil
	}
	project.Status = models.ProjectReady
	project.UpdatedAt = finishedAt
	if job, ok := f.jobs[projectID]; ok {
		job.Status = models.JobDone
		job.FinishedAt = sql.NullTime{Time: finishedAt, Valid: true}
	}
	return true, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestServices(records *fakeRecordStore) (*services.SubmissionService, *services.StatusPoller) {
	threshold := 30 * time.Second
	submission := services.NewSubmissionService(&fakeObjectStore{}, records, testLogger(),
		10<<20, []string{".json", ".yaml", ".yml", ".postman_collection"})
	poller := services.NewStatusPoller(records, services.NewTimeBasedEstimator(threshold), threshold)
	return submission, poller
}

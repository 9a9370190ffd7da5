package services_test

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"specdocs-backend/internal/models"
)

type fakeObjectStore struct {
	uploads    int
	failUpload bool
	lastPath   string
}

func (f *fakeObjectStore) UploadSpec(userID, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	if f.failUpload {
		return "", "", fmt.Errorf("storage unavailable")
	}
	f.uploads++
	f.lastPath = fmt.Sprintf("users/%s/projects/%s/%s", userID, projectID, filename)
	return f.lastPath, "https://storage.test/" + f.lastPath, nil
}

type fakeRecordStore struct {
	projects map[uuid.UUID]*models.Project
	files    map[uuid.UUID]*models.UploadedFile
	jobs     map[uuid.UUID]*models.Job

	failProject bool
	failFile    bool
	failJob     bool

	promotions int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		projects: make(map[uuid.UUID]*models.Project),
		files:    make(map[uuid.UUID]*models.UploadedFile),
		jobs:     make(map[uuid.UUID]*models.Job),
	}
}

func (f *fakeRecordStore) CreateProject(project *models.Project) error {
	if f.failProject {
		return fmt.Errorf("project insert failed")
	}
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
	if f.failFile {
		return fmt.Errorf("file insert failed")
	}
	file.CreatedAt = time.Now()
	f.files[file.ProjectID] = file
	return nil
}

func (f *fakeRecordStore) CreateJob(job *models.Job) error {
	if f.failJob {
		return fmt.Errorf("job insert failed")
	}
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
	f.promotions++
	project.Status = models.ProjectReady
	project.UpdatedAt = finishedAt
	if job, ok := f.jobs[projectID]; ok && (job.Status == models.JobPending || job.Status == models.JobRunning) {
		job.Status = models.JobDone
		job.FinishedAt = sql.NullTime{Time: finishedAt, Valid: true}
	}
	return true, nil
}

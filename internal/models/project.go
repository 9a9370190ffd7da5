package models

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by record lookups that miss, including lookups
// scoped to an owner who does not hold the record.
var ErrNotFound = errors.New("record not found")

type FileType string

const (
	FileTypeOpenAPI FileType = "openapi"
	FileTypePostman FileType = "postman"
)

type ProjectStatus string

const (
	ProjectProcessing ProjectStatus = "processing"
	ProjectReady      ProjectStatus = "ready"
	ProjectFailed     ProjectStatus = "failed"
)

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

type Project struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  string
	FileType     FileType
	Status       ProjectStatus
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UploadedFile struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	UserID       uuid.UUID
	OriginalName string
	StoragePath  string
	StorageURL   string
	MimeType     string
	SizeBytes    int64
	CreatedAt    time.Time
}

type Job struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Status     JobStatus
	Error      sql.NullString
	StartedAt  time.Time
	FinishedAt sql.NullTime
	CreatedAt  time.Time
}

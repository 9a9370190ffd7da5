package services

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"specdocs-backend/internal/detector"
	"specdocs-backend/internal/models"
)

// ObjectStore is the storage gateway half of a submission: it persists raw
// spec content under an owner/project namespaced path.
type ObjectStore interface {
	UploadSpec(userID, projectID uuid.UUID, filename, contentType string, data []byte) (storagePath, storageURL string, err error)
}

// RecordStore is the relational half: project, uploaded-file and job records.
type RecordStore interface {
	CreateProject(project *models.Project) error
	GetProject(projectID, userID uuid.UUID) (*models.Project, error)
	CreateUploadedFile(file *models.UploadedFile) error
	CreateJob(job *models.Job) error
	LatestJob(projectID uuid.UUID) (*models.Job, error)
	CompleteProcessing(projectID uuid.UUID, finishedAt time.Time) (bool, error)
}

type SubmissionInput struct {
	OwnerID  uuid.UUID
	Filename string
	MimeType string
	Size     int64
	Content  []byte
}

type SubmissionService struct {
	objects ObjectStore
	records RecordStore
	logger  *logrus.Logger

	maxUploadBytes    int64
	allowedExtensions []string
	now               func() time.Time
}

func NewSubmissionService(objects ObjectStore, records RecordStore, logger *logrus.Logger, maxUploadBytes int64, allowedExtensions []string) *SubmissionService {
	return &SubmissionService{
		objects:           objects,
		records:           records,
		logger:            logger,
		maxUploadBytes:    maxUploadBytes,
		allowedExtensions: allowedExtensions,
		now:               time.Now,
	}
}

// MIME types accepted as a secondary signal when the extension is not on the
// allow-list. The extension check runs first and either match is sufficient.
var acceptedMimeTypes = map[string]bool{
	"application/json":   true,
	"application/yaml":   true,
	"application/x-yaml": true,
	"text/yaml":          true,
	"text/x-yaml":        true,
}

// Submit runs the upload workflow: validate, detect the spec type, store the
// content, then insert the Project, UploadedFile and Job records. The three
// inserts are not transactional; each failure carries its own kind so the
// caller can tell a clean rejection from a partially persisted submission.
// The storage upload is never rolled back.
func (s *SubmissionService) Submit(in SubmissionInput) (*models.Project, *SubmissionError) {
	if in.OwnerID == uuid.Nil {
		return nil, submissionError(ErrUnauthenticated, "owner identity is required", nil)
	}
	if len(in.Content) == 0 || in.Filename == "" {
		return nil, submissionError(ErrMissingFile, "no file provided", nil)
	}
	if in.Size > s.maxUploadBytes {
		return nil, submissionError(ErrFileTooLarge, "file exceeds the maximum upload size", nil)
	}
	if !s.typeAllowed(in.Filename, in.MimeType) {
		return nil, submissionError(ErrUnsupportedType, "file type is not supported", nil)
	}

	projectID := uuid.New()

	storagePath, storageURL, err := s.objects.UploadSpec(in.OwnerID, projectID, in.Filename, in.MimeType, in.Content)
	if err != nil {
		return nil, submissionError(ErrStorage, "failed to store spec file", err)
	}

	fileType := detector.Detect(in.Content)

	project := &models.Project{
		ID:       projectID,
		UserID:   in.OwnerID,
		Title:    titleFromFilename(in.Filename),
		FileType: fileType,
		Status:   models.ProjectProcessing,
	}
	if err := s.records.CreateProject(project); err != nil {
		return nil, submissionError(ErrProjectRecord, "spec stored but project record failed", err)
	}

	file := &models.UploadedFile{
		ID:           uuid.New(),
		ProjectID:    projectID,
		UserID:       in.OwnerID,
		OriginalName: in.Filename,
		StoragePath:  storagePath,
		StorageURL:   storageURL,
		MimeType:     in.MimeType,
		SizeBytes:    in.Size,
	}
	if err := s.records.CreateUploadedFile(file); err != nil {
		return nil, submissionError(ErrFileRecord, "spec stored but file record failed", err)
	}

	job := &models.Job{
		ID:        uuid.New(),
		ProjectID: projectID,
		Status:    models.JobPending,
		StartedAt: s.now(),
	}
	if err := s.records.CreateJob(job); err != nil {
		return nil, submissionError(ErrJobRecord, "spec stored but job record failed", err)
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": projectID.String(),
		"file_type":  string(fileType),
		"size_bytes": in.Size,
	}).Info("spec submitted")

	return project, nil
}

func (s *SubmissionService) typeAllowed(filename, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}

	if mimeType == "" {
		return false
	}
	// Strip parameters such as "; charset=utf-8".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return acceptedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return filename
	}
	return base
}

package services_test

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"specdocs-backend/internal/config"
	"specdocs-backend/internal/models"
	"specdocs-backend/internal/services"
)

func newSubmissionService(objects *fakeObjectStore, records *fakeRecordStore) *services.SubmissionService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return services.NewSubmissionService(objects, records, logger,
		config.DefaultMaxUploadBytes,
		[]string{".json", ".yaml", ".yml", ".postman_collection"})
}

func validInput(ownerID uuid.UUID) services.SubmissionInput {
	return services.SubmissionInput{
		OwnerID:  ownerID,
		Filename: "spec.json",
		MimeType: "application/json",
		Size:     2048,
		Content:  []byte(`{"openapi": "3.0.0", "info": {"title": "Pets"}, "paths": {}}`),
	}
}

func TestSubmit_Success(t *testing.T) {
	objects := &fakeObjectStore{}
	records := newFakeRecordStore()
	svc := newSubmissionService(objects, records)
	ownerID := uuid.New()

	project, subErr := svc.Submit(validInput(ownerID))
	require.Nil(t, subErr)

	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.Equal(t, ownerID, project.UserID)
	assert.Equal(t, "spec", project.Title)
	assert.Equal(t, models.FileTypeOpenAPI, project.FileType)
	assert.Equal(t, models.ProjectProcessing, project.Status)

	assert.Equal(t, 1, objects.uploads)
	assert.Contains(t, objects.lastPath, "users/"+ownerID.String())
	assert.Contains(t, objects.lastPath, "projects/"+project.ID.String())

	file := records.files[project.ID]
	require.NotNil(t, file)
	assert.Equal(t, "spec.json", file.OriginalName)
	assert.Equal(t, int64(2048), file.SizeBytes)

	job := records.jobs[project.ID]
	require.NotNil(t, job)
	assert.Equal(t, models.JobPending, job.Status)
	assert.False(t, job.FinishedAt.Valid)
}

func TestSubmit_PostmanDetection(t *testing.T) {
	svc := newSubmissionService(&fakeObjectStore{}, newFakeRecordStore())

	in := validInput(uuid.New())
	in.Filename = "pets.postman_collection"
	in.Content = []byte(`{"info": {"name": "Pets"}, "item": [{"name": "List"}]}`)

	project, subErr := svc.Submit(in)
	require.Nil(t, subErr)
	assert.Equal(t, models.FileTypePostman, project.FileType)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	objects := &fakeObjectStore{}
	records := newFakeRecordStore()
	svc := newSubmissionService(objects, records)

	in := validInput(uuid.Nil)
	_, subErr := svc.Submit(in)

	require.NotNil(t, subErr)
	assert.Equal(t, services.ErrUnauthenticated, subErr.Kind)
	assert.Equal(t, 0, objects.uploads)
}

func TestSubmit_MissingFile(t *testing.T) {
	svc := newSubmissionService(&fakeObjectStore{}, newFakeRecordStore())

	in := validInput(uuid.New())
	in.Content = nil
	_, subErr := svc.Submit(in)

	require.NotNil(t, subErr)
	assert.Equal(t, services.ErrMissingFile, subErr.Kind)
}

func TestSubmit_FileTooLarge_NoSideEffects(t *testing.T) {
	objects := &fakeObjectStore{}
	records := newFakeRecordStore()
	svc := newSubmissionService(objects, records)

	in := validInput(uuid.New())
	in.Size = config.DefaultMaxUploadBytes + 1
	_, subErr := svc.Submit(in)

	require.NotNil(t, subErr)
	assert.Equal(t, services.ErrFileTooLarge, subErr.Kind)
	assert.Equal(t, 0, objects.uploads)
	assert.Empty(t, records.projects)
	assert.Empty(t, records.files)
	assert.Empty(t, records.jobs)
}

func TestSubmit_AllowedExtensionIgnoresMime(t *testing.T) {
	svc := newSubmissionService(&fakeObjectStore{}, newFakeRecordStore())

	// Extension on the allow-list passes validation no matter the MIME type.
	in := validInput(uuid.New())
	in.Filename = "spec.yaml"
	in.MimeType = "application/octet-stream"
	in.Content = []byte("openapi: 3.0.0\n")

	_, subErr := svc.Submit(in)
	assert.Nil(t, subErr)
}

func TestSubmit_MimeMatchWithoutExtension(t *testing.T) {
	svc := newSubmissionService(&fakeObjectStore{}, newFakeRecordStore())

	in := validInput(uuid.New())
	in.Filename = "spec.txt"
	in.MimeType = "application/json; charset=utf-8"

	_, subErr := svc.Submit(in)
	assert.Nil(t, subErr)
}

func TestSubmit_UnsupportedType(t *testing.T) {
	objects := &fakeObjectStore{}
	svc := newSubmissionService(objects, newFakeRecordStore())

	in := validInput(uuid.New())
	in.Filename = "spec.exe"
	in.MimeType = "application/octet-stream"

	_, subErr := svc.Submit(in)
	require.NotNil(t, subErr)
	assert.Equal(t, services.ErrUnsupportedType, subErr.Kind)
	assert.Equal(t, 0, objects.uploads)
}

func TestSubmit_StorageFailureStopsFlow(t *testing.T) {
	objects := &fakeObjectStore{failUpload: true}
	records := newFakeRecordStore()
	svc := newSubmissionService(objects, records)

	_, subErr := svc.Submit(validInput(uuid.New()))

	require.NotNil(t, subErr)
	assert.Equal(t, services.ErrStorage, subErr.Kind)
	assert.False(t, subErr.Partial())
	assert.Empty(t, records.projects)
}

func TestSubmit_RecordFailuresAreDistinct(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(*fakeRecordStore)
		expected services.SubmissionErrorKind
	}{
		{"project insert", func(f *fakeRecordStore) { f.failProject = true }, services.ErrProjectRecord},
		{"file insert", func(f *fakeRecordStore) { f.failFile = true }, services.ErrFileRecord},
		{"job insert", func(f *fakeRecordStore) { f.failJob = true }, services.ErrJobRecord},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			objects := &fakeObjectStore{}
			records := newFakeRecordStore()
			tc.setup(records)
			svc := newSubmissionService(objects, records)

			_, subErr := svc.Submit(validInput(uuid.New()))

			require.NotNil(t, subErr)
			assert.Equal(t, tc.expected, subErr.Kind)
			// The upload happened before the failing insert; partial state
			// is reported, not masked.
			assert.Equal(t, 1, objects.uploads)
			assert.True(t, subErr.Partial())
		})
	}
}

func TestSubmit_RetryUsesFreshProjectID(t *testing.T) {
	objects := &fakeObjectStore{}
	records := newFakeRecordStore()
	svc := newSubmissionService(objects, records)
	ownerID := uuid.New()

	first, subErr := svc.Submit(validInput(ownerID))
	require.Nil(t, subErr)
	second, subErr := svc.Submit(validInput(ownerID))
	require.Nil(t, subErr)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, records.projects, 2)
}

package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"specdocs-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) CreateProject(project *models.Project) error {
	err := d.db.QueryRow(`
		INSERT INTO projects (id, user_id, title, description, file_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, project.ID, project.UserID, project.Title, project.Description,
		project.FileType, project.Status).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (d *DatabaseClient) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, user_id, title, description, file_type, status, error_message, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID).Scan(
		&project.ID, &project.UserID, &project.Title, &project.Description,
		&project.FileType, &project.Status, &project.ErrorMessage,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, title, description, file_type, status, error_message, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.UserID, &project.Title, &project.Description,
			&project.FileType, &project.Status, &project.ErrorMessage,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func (d *DatabaseClient) DeleteProject(projectID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID)
	return err
}

func (d *DatabaseClient) CreateUploadedFile(file *models.UploadedFile) error {
	err := d.db.QueryRow(`
		INSERT INTO uploaded_files (id, project_id, user_id, original_name, storage_path, storage_url, mime_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, file.ID, file.ProjectID, file.UserID, file.OriginalName, file.StoragePath,
		file.StorageURL, file.MimeType, file.SizeBytes).Scan(&file.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create uploaded file: %w", err)
	}

	return nil
}

func (d *DatabaseClient) GetUploadedFile(projectID, userID uuid.UUID) (*models.UploadedFile, error) {
	var file models.UploadedFile
	err := d.db.QueryRow(`
		SELECT id, project_id, user_id, original_name, storage_path, storage_url, mime_type, size_bytes, created_at
		FROM uploaded_files
		WHERE project_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, projectID, userID).Scan(
		&file.ID, &file.ProjectID, &file.UserID, &file.OriginalName,
		&file.StoragePath, &file.StorageURL, &file.MimeType, &file.SizeBytes,
		&file.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get uploaded file: %w", err)
	}

	return &file, nil
}

func (d *DatabaseClient) CreateJob(job *models.Job) error {
	err := d.db.QueryRow(`
		INSERT INTO jobs (id, project_id, status, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, job.ID, job.ProjectID, job.Status, job.StartedAt).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// LatestJob returns the most recent job for a project. Creation-time ties are
// broken by id so repeated reads pick the same row.
func (d *DatabaseClient) LatestJob(projectID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := d.db.QueryRow(`
		SELECT id, project_id, status, error, started_at, finished_at, created_at
		FROM jobs
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, projectID).Scan(
		&job.ID, &job.ProjectID, &job.Status, &job.Error,
		&job.StartedAt, &job.FinishedAt, &job.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest job: %w", err)
	}

	return &job, nil
}

// CompleteProcessing promotes a processing project to ready and closes its
// open jobs. The guard on the current status makes the write idempotent:
// concurrent pollers race here and only the first one changes any rows.
// Returns whether this call performed the promotion.
func (d *DatabaseClient) CompleteProcessing(projectID uuid.UUID, finishedAt time.Time) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE projects
		SET status = 'ready', updated_at = $2
		WHERE id = $1 AND status = 'processing'
	`, projectID, finishedAt)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to promote project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to check promotion result: %w", err)
	}
	if rows == 0 {
		// Already terminal; another poller won the race or the project failed.
		tx.Rollback()
		return false, nil
	}

	_, err = tx.Exec(`
		UPDATE jobs
		SET status = 'done', finished_at = $2
		WHERE project_id = $1 AND status IN ('pending', 'running')
	`, projectID, finishedAt)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to complete job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit promotion: %w", err)
	}

	return true, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

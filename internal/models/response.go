package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SubmitResponse struct {
	ProjectID string `json:"project_id"`
	FileType  string `json:"file_type"`
	Status    string `json:"status"`
}

type ProjectResponse struct {
	ID           string    `json:"project_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	FileType     string    `json:"file_type"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type ProjectSummary struct {
	ID        string    `json:"project_id"`
	Title     string    `json:"title"`
	FileType  string    `json:"file_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProgressInfo struct {
	Percentage int    `json:"percentage"`
	Stage      string `json:"stage"`
}

type JobInfo struct {
	ID         string     `json:"job_id"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type StatusResponse struct {
	ProjectID string       `json:"project_id"`
	Status    string       `json:"status"`
	Progress  ProgressInfo `json:"progress"`
	Job       *JobInfo     `json:"job,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type FileResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	OriginalName string    `json:"original_name"`
	StorageURL   string    `json:"storage_url"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type PreviewResponse struct {
	ProjectID string `json:"project_id"`
	Model     string `json:"model"`
	Markdown  string `json:"markdown"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

package services

// SubmissionErrorKind identifies which step of the submission flow failed.
// Kinds after StorageError mean the upload itself succeeded and the system
// holds a partial set of records; callers may retry with a fresh project id.
type SubmissionErrorKind string

const (
	ErrUnauthenticated SubmissionErrorKind = "unauthenticated"
	ErrMissingFile     SubmissionErrorKind = "missing_file"
	ErrFileTooLarge    SubmissionErrorKind = "file_too_large"
	ErrUnsupportedType SubmissionErrorKind = "unsupported_type"
	ErrStorage         SubmissionErrorKind = "storage_error"
	ErrProjectRecord   SubmissionErrorKind = "project_record_error"
	ErrFileRecord      SubmissionErrorKind = "file_record_error"
	ErrJobRecord       SubmissionErrorKind = "job_record_error"
)

type SubmissionError struct {
	Kind    SubmissionErrorKind
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Partial reports whether the stored state is incomplete: the spec file was
// uploaded but one of the follow-up record inserts failed.
func (e *SubmissionError) Partial() bool {
	switch e.Kind {
	case ErrProjectRecord, ErrFileRecord, ErrJobRecord:
		return true
	}
	return false
}

func submissionError(kind SubmissionErrorKind, message string, err error) *SubmissionError {
	return &SubmissionError{Kind: kind, Message: message, Err: err}
}

type PollErrorKind string

const (
	ErrPollUnauthorized PollErrorKind = "unauthorized"
	ErrPollNotFound     PollErrorKind = "not_found"
	ErrPollStore        PollErrorKind = "store_error"
)

type PollError struct {
	Kind    PollErrorKind
	Message string
	Err     error
}

func (e *PollError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PollError) Unwrap() error {
	return e.Err
}

func pollError(kind PollErrorKind, message string, err error) *PollError {
	return &PollError{Kind: kind, Message: message, Err: err}
}

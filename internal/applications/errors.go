package applications

import "errors"

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidInput  = errors.New("invalid application input")
	ErrAlreadyExists = errors.New("already applied to this job")
	ErrJobClosed     = errors.New("job is closed")
	ErrForbidden     = errors.New("application belongs to another user")
	ErrNoAttachment  = errors.New("application has no resume attached")
)

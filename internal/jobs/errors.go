package jobs

import "errors"

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid job input")
	ErrForbidden    = errors.New("job belongs to another company")
)

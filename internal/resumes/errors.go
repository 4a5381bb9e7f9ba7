package resumes

import "errors"

var (
	ErrMissingFile    = errors.New("resume file is required")
	ErrUnparseablePDF = errors.New("resume could not be parsed as a PDF")
	ErrAnalysis       = errors.New("resume analysis failed")
)

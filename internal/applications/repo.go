package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	// Create stores a new application; a second one for the same job and applicant fails with ErrAlreadyExists.
	Create(ctx context.Context, app Application) error
	Get(ctx context.Context, id string) (Application, error)
	Find(ctx context.Context, jobID, applicantID string) (Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) (Application, error)
}

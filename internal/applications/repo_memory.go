package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

// Create stores an application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return ErrAlreadyExists
		}
	}
	r.data[app.ID] = app
	return nil
}

// Get returns an application by ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// Find returns the application for a job and applicant.
func (r *MemoryRepo) Find(ctx context.Context, jobID, applicantID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

// ListByApplicant returns an applicant's applications, newest first.
func (r *MemoryRepo) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	return r.list(ctx, func(a Application) bool { return a.ApplicantID == applicantID })
}

// ListByJob returns a job's applications, newest first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.list(ctx, func(a Application) bool { return a.JobID == jobID })
}

// UpdateStatus sets the status of an application.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	r.data[id] = app
	return app, nil
}

func (r *MemoryRepo) list(ctx context.Context, keep func(Application) bool) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Application{}
	for _, app := range r.data {
		if keep(app) {
			out = append(out, app)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)

package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

// Create stores a new job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = clone(job)
	return nil
}

// Get returns a job by ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return clone(job), nil
}

// Update replaces a stored job.
func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[job.ID]; !ok {
		return ErrNotFound
	}
	r.data[job.ID] = clone(job)
	return nil
}

// Delete removes a job.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// List returns matching jobs, newest first.
func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Job, 0, len(r.data))
	for _, job := range r.data {
		if filter.Matches(job) {
			out = append(out, clone(job))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// ListByIDs returns the jobs that exist among ids, newest first.
func (r *MemoryRepo) ListByIDs(ctx context.Context, ids []string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Job, 0, len(ids))
	for _, id := range ids {
		if job, ok := r.data[id]; ok {
			out = append(out, clone(job))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// CloseExpired closes open jobs whose deadline is before now.
func (r *MemoryRepo) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	closed := 0
	for id, job := range r.data {
		if job.ClosedAt == nil && job.Deadline != nil && job.Deadline.Before(now) {
			at := now
			job.ClosedAt = &at
			r.data[id] = job
			closed++
		}
	}
	return closed, nil
}

func sortNewestFirst(list []Job) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].PostedAt.Equal(list[j].PostedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].PostedAt.After(list[j].PostedAt)
	})
}

func clone(job Job) Job {
	if job.SkillsRequired != nil {
		job.SkillsRequired = append([]string(nil), job.SkillsRequired...)
	}
	return job
}

var _ Repo = (*MemoryRepo)(nil)

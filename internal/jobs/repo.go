package jobs

import (
	"context"
	"time"
)

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Job, error)
	ListByIDs(ctx context.Context, ids []string) ([]Job, error)
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}

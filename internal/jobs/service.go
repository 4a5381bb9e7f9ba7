package jobs

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements job postings.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create posts a job for companyID.
func (s *Service) Create(ctx context.Context, companyID string, in Input) (Job, error) {
	if strings.TrimSpace(companyID) == "" {
		return Job{}, fmt.Errorf("%w: company id required", ErrInvalidInput)
	}
	job := Job{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		PostedAt:  s.now(),
	}
	if err := apply(&job, in); err != nil {
		return Job{}, err
	}
	if job.Title == "" {
		return Job{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get fetches a job.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if strings.TrimSpace(id) == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// Update changes the fields set in in. Only the owning company may update.
func (s *Service) Update(ctx context.Context, callerID, id string, in Input) (Job, error) {
	job, err := s.owned(ctx, callerID, id)
	if err != nil {
		return Job{}, err
	}
	if err := apply(&job, in); err != nil {
		return Job{}, err
	}
	if job.Title == "" {
		return Job{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Delete removes a job. Only the owning company may delete.
func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// List returns jobs matching filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Job, error) {
	filter.Skill = strings.TrimSpace(filter.Skill)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.EmploymentType = strings.TrimSpace(filter.EmploymentType)
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.EmploymentType != "" && !slices.Contains(employmentTypes, filter.EmploymentType) {
		return nil, fmt.Errorf("%w: unknown employmentType %q", ErrInvalidInput, filter.EmploymentType)
	}
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return s.Repo.List(ctx, filter)
}

// ListByIDs returns the jobs among ids.
func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Job, error) {
	return s.Repo.ListByIDs(ctx, ids)
}

// CloseExpired closes every open job whose deadline has passed.
func (s *Service) CloseExpired(ctx context.Context) (int, error) {
	return s.Repo.CloseExpired(ctx, s.now())
}

// Owned returns the job if callerID owns it.
func (s *Service) Owned(ctx context.Context, callerID, id string) (Job, error) {
	return s.owned(ctx, callerID, id)
}

func (s *Service) owned(ctx context.Context, callerID, id string) (Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if job.CompanyID != callerID {
		return Job{}, ErrForbidden
	}
	return job, nil
}

func apply(job *Job, in Input) error {
	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		job.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.SkillsRequired != nil {
		job.SkillsRequired = normalizeSkills(in.SkillsRequired)
	}
	if in.SalaryRange != nil {
		job.SalaryRange = strings.TrimSpace(*in.SalaryRange)
	}
	if in.EmploymentType != nil {
		et := strings.TrimSpace(*in.EmploymentType)
		if et != "" && !slices.Contains(employmentTypes, et) {
			return fmt.Errorf("%w: employmentType must be one of %s", ErrInvalidInput, strings.Join(employmentTypes, ", "))
		}
		job.EmploymentType = et
	}
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		job.Deadline = &d
	}
	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}
	return nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

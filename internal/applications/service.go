package applications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/jobs"
	"resume-parser/internal/shared/storage/object"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/shared/util"
)

// JobLookup is the slice of the jobs service applications depend on.
type JobLookup interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
	Owned(ctx context.Context, callerID, id string) (jobs.Job, error)
	ListByIDs(ctx context.Context, ids []string) ([]jobs.Job, error)
}

// Attachment is an optional résumé sent with an application.
type Attachment struct {
	FileName string
	Body     io.Reader
}

// AppliedJob pairs an application with its job.
type AppliedJob struct {
	Application Application
	Job         jobs.Job
}

// Service implements job applications.
type Service struct {
	Repo  Repo
	Jobs  JobLookup
	Store object.Store
	Now   func() time.Time
}

// NewService constructs a Service. store may be nil when attachments are disabled.
func NewService(repo Repo, jobLookup JobLookup, store object.Store) *Service {
	return &Service{Repo: repo, Jobs: jobLookup, Store: store, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Apply records applicantID's application to jobID, storing the attachment if present.
func (s *Service) Apply(ctx context.Context, applicantID, jobID string, att *Attachment) (Application, error) {
	if strings.TrimSpace(applicantID) == "" {
		return Application{}, fmt.Errorf("%w: applicant id required", ErrInvalidInput)
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	now := s.now()
	if job.Closed(now) {
		return Application{}, ErrJobClosed
	}
	if _, err := s.Repo.Find(ctx, jobID, applicantID); err == nil {
		return Application{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Application{}, err
	}

	app := Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if att != nil && att.Body != nil {
		if s.Store == nil {
			return Application{}, fmt.Errorf("%w: attachments are not enabled", ErrInvalidInput)
		}
		obj, err := s.Store.Put(ctx, jobID+"/"+applicantID, att.FileName, att.Body)
		if errors.Is(err, util.ErrInvalidFileName) {
			return Application{}, fmt.Errorf("%w: resume file name %q", ErrInvalidInput, att.FileName)
		}
		if err != nil {
			return Application{}, fmt.Errorf("store resume: %w", err)
		}
		app.ResumeKey = obj.Key
		app.ResumeFileName = att.FileName
		app.ResumeContentType = obj.ContentType
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		s.discard(app.ResumeKey)
		return Application{}, err
	}
	return app, nil
}

// Applied returns the caller's applications with their jobs, newest first.
// Applications whose job was deleted are skipped.
func (s *Service) Applied(ctx context.Context, applicantID string) ([]AppliedJob, error) {
	apps, err := s.Repo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	list, err := s.Jobs.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]jobs.Job, len(list))
	for _, j := range list {
		byID[j.ID] = j
	}

	out := make([]AppliedJob, 0, len(apps))
	for _, a := range apps {
		if j, ok := byID[a.JobID]; ok {
			out = append(out, AppliedJob{Application: a, Job: j})
		}
	}
	return out, nil
}

// AppliedJobIDs returns the IDs of every job the applicant applied to.
func (s *Service) AppliedJobIDs(ctx context.Context, applicantID string) ([]string, error) {
	if applicantID == "" {
		return nil, nil
	}
	apps, err := s.Repo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	return ids, nil
}

// Applicants lists applications for a job owned by callerID.
func (s *Service) Applicants(ctx context.Context, callerID, jobID string) ([]Application, error) {
	if _, err := s.Jobs.Owned(ctx, callerID, jobID); err != nil {
		return nil, err
	}
	return s.Repo.ListByJob(ctx, jobID)
}

// UpdateStatus lets the owning company move an application to a new status.
func (s *Service) UpdateStatus(ctx context.Context, callerID, id, status string) (Application, error) {
	status = strings.TrimSpace(status)
	if !ValidStatus(status) {
		return Application{}, fmt.Errorf("%w: status must be one of %s", ErrInvalidInput, strings.Join(statuses, ", "))
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if _, err := s.Jobs.Owned(ctx, callerID, app.JobID); err != nil {
		return Application{}, err
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

// OpenResume opens the attachment for the applicant or the job's owner.
func (s *Service) OpenResume(ctx context.Context, callerID, id string) (Application, io.ReadCloser, error) {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, nil, err
	}
	if app.ApplicantID != callerID {
		if _, err := s.Jobs.Owned(ctx, callerID, app.JobID); err != nil {
			if errors.Is(err, jobs.ErrForbidden) {
				return Application{}, nil, ErrForbidden
			}
			return Application{}, nil, err
		}
	}
	if app.ResumeKey == "" || s.Store == nil {
		return Application{}, nil, ErrNoAttachment
	}
	rc, err := s.Store.Open(ctx, app.ResumeKey)
	if err != nil {
		return Application{}, nil, fmt.Errorf("open resume: %w", err)
	}
	return app, rc, nil
}

func (s *Service) discard(key string) {
	if key == "" || s.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("applications.attachment.cleanup_failed", map[string]any{"key": key, "error": err.Error()})
	}
}

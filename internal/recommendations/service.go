package recommendations

import (
	"context"
	"io"
	"time"

	"resume-parser/internal/jobs"
	"resume-parser/internal/resumes"
)

// JobLister lists open jobs.
type JobLister interface {
	List(ctx context.Context, filter jobs.Filter) ([]jobs.Job, error)
}

// AppliedLister returns the jobs a user already applied to.
type AppliedLister interface {
	AppliedJobIDs(ctx context.Context, applicantID string) ([]string, error)
}

// ResumeParser extracts skills from an uploaded résumé.
type ResumeParser interface {
	Parse(ctx context.Context, r io.Reader) (resumes.Parsed, error)
}

// Service recommends jobs for a set of skills.
type Service struct {
	Jobs    JobLister
	Applied AppliedLister
	Parser  ResumeParser
	Limit   int
	Now     func() time.Time
}

// NewService constructs a Service.
func NewService(jobLister JobLister, applied AppliedLister, parser ResumeParser) *Service {
	return &Service{Jobs: jobLister, Applied: applied, Parser: parser, Limit: DefaultLimit, Now: time.Now}
}

// Recommend ranks open jobs for skills, skipping jobs userID applied to.
func (s *Service) Recommend(ctx context.Context, userID string, skills []string) ([]Match, error) {
	if len(skills) == 0 {
		return []Match{}, nil
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	open, err := s.Jobs.List(ctx, jobs.Filter{Now: now})
	if err != nil {
		return nil, err
	}
	exclude := map[string]bool{}
	if s.Applied != nil && userID != "" {
		ids, err := s.Applied.AppliedJobIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			exclude[id] = true
		}
	}
	return Rank(open, skills, exclude, s.Limit, now), nil
}

// RecommendForResume parses the résumé and ranks jobs for its skills.
func (s *Service) RecommendForResume(ctx context.Context, userID string, r io.Reader) ([]string, []Match, error) {
	parsed, err := s.Parser.Parse(ctx, r)
	if err != nil {
		return nil, nil, err
	}
	matches, err := s.Recommend(ctx, userID, parsed.Skills)
	if err != nil {
		return nil, nil, err
	}
	return parsed.Skills, matches, nil
}

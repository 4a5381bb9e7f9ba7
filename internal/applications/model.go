package applications

import (
	"slices"
	"time"

	"resume-parser/internal/jobs"
)

// Application statuses.
const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusRejected = "Rejected"
	StatusAccepted = "Accepted"
)

var statuses = []string{StatusPending, StatusReviewed, StatusRejected, StatusAccepted}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	return slices.Contains(statuses, s)
}

// Application is one applicant's submission to a job.
type Application struct {
	ID                string
	JobID             string
	ApplicantID       string
	ResumeKey         string
	ResumeFileName    string
	ResumeContentType string
	Status            string
	AppliedAt         time.Time
	UpdatedAt         time.Time
}

// Response is the JSON view of an application.
type Response struct {
	ID          string         `json:"id"`
	JobID       string         `json:"jobId"`
	ApplicantID string         `json:"applicantId"`
	HasResume   bool           `json:"hasResume"`
	ResumeName  string         `json:"resumeFileName,omitempty"`
	Status      string         `json:"status"`
	AppliedAt   time.Time      `json:"appliedAt"`
	Job         *jobs.Response `json:"job,omitempty"`
}

func toResponse(a Application) Response {
	return Response{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		HasResume:   a.ResumeKey != "",
		ResumeName:  a.ResumeFileName,
		Status:      a.Status,
		AppliedAt:   a.AppliedAt,
	}
}

func toResponses(list []Application) []Response {
	out := make([]Response, 0, len(list))
	for _, a := range list {
		out = append(out, toResponse(a))
	}
	return out
}

package jobs

import (
	"strings"
	"time"
)

// Employment types accepted on a job.
const (
	EmploymentFullTime   = "Full-time"
	EmploymentPartTime   = "Part-time"
	EmploymentContract   = "Contract"
	EmploymentInternship = "Internship"
)

var employmentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship}

// Job is a posting owned by a company user.
type Job struct {
	ID             string
	Title          string
	CompanyID      string
	Location       string
	Description    string
	SkillsRequired []string
	SalaryRange    string
	EmploymentType string
	PostedAt       time.Time
	Deadline       *time.Time
	ClosedAt       *time.Time
}

// Closed reports whether the job was closed or its deadline passed before now.
// A zero now only checks ClosedAt.
func (j Job) Closed(now time.Time) bool {
	if j.ClosedAt != nil {
		return true
	}
	return !now.IsZero() && j.Deadline != nil && j.Deadline.Before(now)
}

// Filter narrows a job listing. Empty fields match everything.
type Filter struct {
	Skill          string
	Location       string
	EmploymentType string
	Search         string
	IncludeClosed  bool
	// Now hides jobs whose deadline is before it. Service.List fills it in.
	Now time.Time
}

// Matches applies the filter to a single job.
func (f Filter) Matches(j Job) bool {
	if !f.IncludeClosed && j.Closed(f.Now) {
		return false
	}
	if f.Location != "" && j.Location != f.Location {
		return false
	}
	if f.EmploymentType != "" && j.EmploymentType != f.EmploymentType {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Skill != "" && !HasSkill(j.SkillsRequired, f.Skill) {
		return false
	}
	return true
}

// HasSkill reports case-insensitive membership of skill in skills.
func HasSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// Input carries writable job fields. Nil pointers leave a field unchanged on update.
type Input struct {
	Title          *string    `json:"title"`
	Location       *string    `json:"location"`
	Description    *string    `json:"description"`
	SkillsRequired []string   `json:"skillsRequired"`
	SalaryRange    *string    `json:"salaryRange"`
	EmploymentType *string    `json:"employmentType"`
	Deadline       *time.Time `json:"deadline"`
}

// Response is the JSON view of a job.
type Response struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	CompanyID      string     `json:"companyId"`
	Location       string     `json:"location,omitempty"`
	Description    string     `json:"description,omitempty"`
	SkillsRequired []string   `json:"skillsRequired"`
	SalaryRange    string     `json:"salaryRange,omitempty"`
	EmploymentType string     `json:"employmentType,omitempty"`
	PostedAt       time.Time  `json:"postedAt"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Closed         bool       `json:"closed"`
}

// ToResponse converts a Job to its JSON view as of the current time.
func ToResponse(j Job) Response {
	return ToResponseAt(j, time.Now().UTC())
}

// ToResponseAt converts a Job to its JSON view; closed is evaluated at now.
func ToResponseAt(j Job, now time.Time) Response {
	skills := j.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return Response{
		ID:             j.ID,
		Title:          j.Title,
		CompanyID:      j.CompanyID,
		Location:       j.Location,
		Description:    j.Description,
		SkillsRequired: skills,
		SalaryRange:    j.SalaryRange,
		EmploymentType: j.EmploymentType,
		PostedAt:       j.PostedAt,
		Deadline:       j.Deadline,
		Closed:         j.Closed(now),
	}
}

// ToResponses converts a slice of jobs.
func ToResponses(list []Job) []Response {
	out := make([]Response, 0, len(list))
	for _, j := range list {
		out = append(out, ToResponse(j))
	}
	return out
}

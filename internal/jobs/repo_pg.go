package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres. Skills are stored as a JSONB array.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, title, company_id, location, description, skills_required, salary_range, employment_type, posted_at, deadline, closed_at`

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id,
    title,
    company_id,
    location,
    description,
    skills_required,
    salary_range,
    employment_type,
    posted_at,
    deadline,
    closed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL)`

	skills, err := encodeSkills(job.SkillsRequired)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.CompanyID,
		job.Location,
		job.Description,
		skills,
		job.SalaryRange,
		job.EmploymentType,
		job.PostedAt,
		nullTime(job.Deadline),
	)
	return err
}

// Get fetches a job by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Job, error) {
	query := `SELECT ` + selectColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// Update writes every mutable column of job.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs
SET title = $1, location = $2, description = $3, skills_required = $4, salary_range = $5, employment_type = $6, deadline = $7
WHERE id = $8`

	skills, err := encodeSkills(job.SkillsRequired)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		job.Title,
		job.Location,
		job.Description,
		skills,
		job.SalaryRange,
		job.EmploymentType,
		nullTime(job.Deadline),
		job.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a job; its applications go with it.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// List returns jobs matching filter, newest first.
func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Job, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeClosed {
		where = append(where, "closed_at IS NULL")
		if !filter.Now.IsZero() {
			where = append(where, "(deadline IS NULL OR deadline >= "+arg(filter.Now)+")")
		}
	}
	if filter.Location != "" {
		where = append(where, "location = "+arg(filter.Location))
	}
	if filter.EmploymentType != "" {
		where = append(where, "employment_type = "+arg(filter.EmploymentType))
	}
	if filter.Search != "" {
		where = append(where, "strpos(lower(title), lower("+arg(filter.Search)+")) > 0")
	}
	if filter.Skill != "" {
		where = append(where, "EXISTS (SELECT 1 FROM jsonb_array_elements_text(skills_required) AS s(skill) WHERE lower(s.skill) = lower("+arg(filter.Skill)+"))")
	}

	query := `SELECT ` + selectColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY posted_at DESC, id"

	return r.queryJobs(ctx, query, args...)
}

// ListByIDs returns the jobs among ids, newest first.
func (r *PGRepo) ListByIDs(ctx context.Context, ids []string) ([]Job, error) {
	if len(ids) == 0 {
		return []Job{}, nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + selectColumns + ` FROM jobs
WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb))
ORDER BY posted_at DESC, id`
	return r.queryJobs(ctx, query, string(raw))
}

// CloseExpired closes open jobs whose deadline passed.
func (r *PGRepo) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	const query = `
UPDATE jobs
SET closed_at = $1
WHERE closed_at IS NULL AND deadline IS NOT NULL AND deadline < $1`
	res, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *PGRepo) queryJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var location, description, salary, employment sql.NullString
	var skills []byte
	var deadline, closedAt sql.NullTime
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.CompanyID,
		&location,
		&description,
		&skills,
		&salary,
		&employment,
		&job.PostedAt,
		&deadline,
		&closedAt,
	); err != nil {
		return Job{}, err
	}
	job.Location = location.String
	job.Description = description.String
	job.SalaryRange = salary.String
	job.EmploymentType = employment.String
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &job.SkillsRequired); err != nil {
			return Job{}, fmt.Errorf("decode skills_required: %w", err)
		}
	}
	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}
	if deadline.Valid {
		job.Deadline = &deadline.Time
	}
	if closedAt.Valid {
		job.ClosedAt = &closedAt.Time
	}
	return job, nil
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encode skills_required: %w", err)
	}
	return string(raw), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

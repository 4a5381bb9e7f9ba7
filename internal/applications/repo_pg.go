package applications

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const (
	selectColumns = `id, job_id, applicant_id, resume_key, resume_file_name, resume_content_type, status, applied_at, updated_at`

	uniqueViolation = "23505"
)

// Create inserts an application. The unique (job_id, applicant_id) index reports duplicates.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id,
    job_id,
    applicant_id,
    resume_key,
    resume_file_name,
    resume_content_type,
    status,
    applied_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.JobID,
		app.ApplicantID,
		nullString(app.ResumeKey),
		nullString(app.ResumeFileName),
		nullString(app.ResumeContentType),
		app.Status,
		app.AppliedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrAlreadyExists
	}
	return err
}

// Get fetches an application by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE id = $1`
	return r.one(ctx, query, id)
}

// Find fetches the application for a job and applicant.
func (r *PGRepo) Find(ctx context.Context, jobID, applicantID string) (Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE job_id = $1 AND applicant_id = $2`
	return r.one(ctx, query, jobID, applicantID)
}

// ListByApplicant lists an applicant's applications newest first.
func (r *PGRepo) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY applied_at DESC, id`
	return r.many(ctx, query, applicantID)
}

// ListByJob lists a job's applications newest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC, id`
	return r.many(ctx, query, jobID)
}

// UpdateStatus sets the status and returns the updated row.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (Application, error) {
	query := `
UPDATE applications
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING ` + selectColumns
	return r.one(ctx, query, status, id)
}

func (r *PGRepo) one(ctx context.Context, query string, args ...any) (Application, error) {
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func (r *PGRepo) many(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var resumeKey, fileName, contentType sql.NullString
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&resumeKey,
		&fileName,
		&contentType,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return Application{}, err
	}
	app.ResumeKey = resumeKey.String
	app.ResumeFileName = fileName.String
	app.ResumeContentType = contentType.String
	return app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)

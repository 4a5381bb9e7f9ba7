package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var applicationColumns = []string{"id", "job_id", "applicant_id", "resume_key", "resume_file_name", "resume_content_type", "status", "applied_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	app := Application{ID: "app-1", JobID: "job-1", ApplicantID: "jane", Status: StatusPending, AppliedAt: now}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("app-1", "job-1", "jane", nil, nil, nil, StatusPending, now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Create(context.Background(), app); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE applications\\s+SET status = \\$1").
		WithArgs(StatusAccepted, "app-1").
		WillReturnRows(sqlmock.NewRows(applicationColumns).
			AddRow("app-1", "job-1", "jane", "ns/cv.pdf", "cv.pdf", "application/pdf", StatusAccepted, now, now))

	app, err := repo.UpdateStatus(context.Background(), "app-1", StatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if app.Status != StatusAccepted || app.ResumeKey != "ns/cv.pdf" {
		t.Fatalf("unexpected app %+v", app)
	}
}

func TestPGRepoFindNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM applications WHERE job_id = \\$1 AND applicant_id = \\$2").
		WithArgs("job-1", "jane").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	if _, err := repo.Find(context.Background(), "job-1", "jane"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByJob(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM applications WHERE job_id = \\$1 ORDER BY applied_at DESC").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows(applicationColumns).
			AddRow("app-1", "job-1", "jane", nil, nil, nil, StatusPending, now, now).
			AddRow("app-2", "job-1", "john", nil, nil, nil, StatusReviewed, now, now))

	list, err := repo.ListByJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("ListByJob: %v", err)
	}
	if len(list) != 2 || list[1].ApplicantID != "john" {
		t.Fatalf("unexpected list %+v", list)
	}
}

package recommendations

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract/extracttest"
	"resume-parser/internal/jobs"
	"resume-parser/internal/nlp"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/server/middleware"
)

type staticAnalyzer struct {
	doc nlp.Document
}

func (s staticAnalyzer) Analyze(ctx context.Context, text string) (nlp.Document, error) {
	return s.doc, nil
}

func (staticAnalyzer) Name() string { return "static" }

type appliedStub map[string][]string

func (a appliedStub) AppliedJobIDs(ctx context.Context, applicantID string) ([]string, error) {
	return a[applicantID], nil
}

func setup(t *testing.T) (*gin.Engine, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jobSvc := jobs.NewService(jobs.NewMemoryRepo())
	ids := map[string]string{}
	for title, skills := range map[string][]string{
		"Go backend":   {"Go", "PostgreSQL"},
		"Data science": {"Python", "SQL"},
		"Frontend":     {"TypeScript"},
	} {
		j, err := jobSvc.Create(context.Background(), "acme", jobs.Input{Title: &title, SkillsRequired: skills})
		if err != nil {
			t.Fatalf("create job: %v", err)
		}
		ids[title] = j.ID
	}

	parser := resumes.NewService(staticAnalyzer{doc: nlp.Document{
		Entities: []nlp.Entity{{Text: "Python", Label: nlp.SkillLabel}, {Text: "SQL", Label: nlp.SkillLabel}},
	}})
	svc := NewService(jobSvc, appliedStub{"jane": {ids["Go backend"]}}, parser)

	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(svc, 1<<20).RegisterRoutes(r.Group("/api/v1"))
	return r, ids
}

func decode(t *testing.T, w *httptest.ResponseRecorder) recommendResponse {
	t.Helper()
	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestRecommendFromSkills(t *testing.T) {
	r, ids := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{"skills":["go","postgresql"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "jane")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	for _, m := range resp.Recommendations {
		if m.Job.ID == ids["Go backend"] {
			t.Fatalf("applied job must be excluded")
		}
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("expected 2 remaining jobs, got %d", len(resp.Recommendations))
	}
}

func TestRecommendFromResumeUpload(t *testing.T) {
	r, ids := setup(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile(resumes.FormField, "cv.pdf")
	part.Write(extracttest.PDF("Skills: Python, SQL."))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if len(resp.Skills) != 2 {
		t.Fatalf("expected parsed skills, got %v", resp.Skills)
	}
	if len(resp.Recommendations) == 0 || resp.Recommendations[0].Job.ID != ids["Data science"] || resp.Recommendations[0].Score != 1 {
		t.Fatalf("unexpected top match %+v", resp.Recommendations)
	}
}

func TestRecommendRejectsBadBody(t *testing.T) {
	r, _ := setup(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

package bootstrap

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
	"resume-parser/internal/nlp"
	"resume-parser/internal/shared/config"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, text string) (nlp.Document, error) {
	return nlp.Document{
		Entities:  []nlp.Entity{{Text: "Go", Label: nlp.SkillLabel}},
		Sentences: []nlp.Sentence{{Text: text}},
	}, nil
}

func (stubAnalyzer) Name() string { return "stub" }

func TestBuildWiresInMemoryApp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{Env: "dev", LocalStoreDir: t.TempDir(), MaxUploadMB: 1}

	app, err := Build(context.Background(), cfg, Options{Analyzer: stubAnalyzer{}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected in-memory repositories")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("resume", "cv.pdf")
	part.Write(extracttest.PDF("Studied at Springfield College."))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/parse-resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Skills    []string `json:"skills"`
		Education []string `json:"education"`
		RawText   string   `json:"raw_text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Skills) != 1 || len(resp.Education) != 1 || resp.RawText != "Studied at Springfield College." {
		t.Fatalf("unexpected response %+v", resp)
	}

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"analyzer":"stub"`) {
		t.Fatalf("unexpected health %d: %s", w.Code, w.Body.String())
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := config.Config{Env: "production", LocalStoreDir: t.TempDir()}
	if _, err := Build(context.Background(), cfg, Options{Analyzer: stubAnalyzer{}}); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildAnalyzerGeminiNeedsKey(t *testing.T) {
	if _, err := BuildAnalyzer(context.Background(), config.Config{Analyzer: "gemini"}); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY")
	}
}

func TestBuildSchedulesSweeper(t *testing.T) {
	cfg := config.Config{Env: "dev", LocalStoreDir: t.TempDir(), JobSweepSchedule: "@every 1m"}
	app, err := Build(context.Background(), cfg, Options{Analyzer: stubAnalyzer{}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Sweeper == nil {
		t.Fatalf("expected sweeper")
	}

	cfg.JobSweepSchedule = "every now and then"
	if _, err := Build(context.Background(), cfg, Options{Analyzer: stubAnalyzer{}}); err == nil {
		t.Fatalf("expected error for bad schedule")
	}
}

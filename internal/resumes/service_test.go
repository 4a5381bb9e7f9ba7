package resumes

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"resume-parser/internal/extract/extracttest"
	"resume-parser/internal/nlp"
)

type fakeAnalyzer struct {
	doc  nlp.Document
	err  error
	seen string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (nlp.Document, error) {
	f.seen = text
	if f.err != nil {
		return nlp.Document{}, f.err
	}
	return f.doc, nil
}

func (f *fakeAnalyzer) Name() string { return "fake" }

func TestParseFiltersSkillsAndEducation(t *testing.T) {
	analyzer := &fakeAnalyzer{doc: nlp.Document{
		Entities: []nlp.Entity{
			{Text: "Python", Label: "SKILL"},
			{Text: "Jane Doe", Label: "PERSON"},
			{Text: "Python", Label: "SKILL"},
			{Text: "Go", Label: "skill"},
		},
		Sentences: []nlp.Sentence{
			{Text: "Jane Doe studied at Springfield University."},
			{Text: "Skills: Python."},
			{Text: "Then Shelbyville College and Ogdenville University."},
			{Text: "Attended a university abroad."},
		},
	}}
	svc := NewService(analyzer)

	pdf := extracttest.PDF("Jane Doe studied ", "at Springfield University.")
	got, err := svc.Parse(context.Background(), bytes.NewReader(pdf))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if analyzer.seen != "Jane Doe studied at Springfield University." {
		t.Fatalf("analyzer saw %q", analyzer.seen)
	}
	if want := []string{"Python", "Python"}; !reflect.DeepEqual(got.Skills, want) {
		t.Fatalf("skills = %v, want %v", got.Skills, want)
	}
	wantEdu := []string{
		"Jane Doe studied at Springfield University.",
		"Then Shelbyville College and Ogdenville University.",
	}
	if !reflect.DeepEqual(got.Education, wantEdu) {
		t.Fatalf("education = %v, want %v", got.Education, wantEdu)
	}
	if got.RawText != analyzer.seen {
		t.Fatalf("raw text = %q", got.RawText)
	}
	if got.Pages != 2 {
		t.Fatalf("pages = %d", got.Pages)
	}
}

func TestParseEmptyPDF(t *testing.T) {
	svc := NewService(&fakeAnalyzer{})

	got, err := svc.Parse(context.Background(), bytes.NewReader(extracttest.PDF("")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	resp := toResponse(got)
	if resp.Skills == nil || len(resp.Skills) != 0 {
		t.Fatalf("expected empty skills, got %#v", resp.Skills)
	}
	if resp.Education == nil || len(resp.Education) != 0 {
		t.Fatalf("expected empty education, got %#v", resp.Education)
	}
	if resp.RawText != "" {
		t.Fatalf("expected empty raw text, got %q", resp.RawText)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *fakeAnalyzer
		body     []byte
		want     error
	}{
		{name: "not a pdf", analyzer: &fakeAnalyzer{}, body: []byte("plain text resume"), want: ErrUnparseablePDF},
		{name: "corrupt pdf", analyzer: &fakeAnalyzer{}, body: []byte("%PDF-1.4\ngarbage"), want: ErrUnparseablePDF},
		{name: "analyzer failure", analyzer: &fakeAnalyzer{err: errors.New("model exploded")}, body: extracttest.PDF("text"), want: ErrAnalysis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.analyzer).Parse(context.Background(), bytes.NewReader(tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseNilReader(t *testing.T) {
	if _, err := NewService(&fakeAnalyzer{}).Parse(context.Background(), nil); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 1500)
	if got := Truncate(long, RawTextLimit); len(got) != 1000 || !strings.HasPrefix(long, got) {
		t.Fatalf("expected 1000-char prefix, got %d chars", len(got))
	}
	if got := Truncate("short", RawTextLimit); got != "short" {
		t.Fatalf("short text changed: %q", got)
	}

	accented := strings.Repeat("é", 1200)
	got := Truncate(accented, RawTextLimit)
	if utf8.RuneCountInString(got) != 1000 || !utf8.ValidString(got) {
		t.Fatalf("expected 1000 valid runes, got %d", utf8.RuneCountInString(got))
	}
	if Truncate("abc", 0) != "" {
		t.Fatalf("zero limit should be empty")
	}
}

func TestProseScenario(t *testing.T) {
	analyzer, err := nlp.NewProseAnalyzer("")
	if err != nil {
		t.Fatalf("NewProseAnalyzer: %v", err)
	}
	svc := NewService(analyzer)

	pdf := extracttest.PDF("Jane Doe studied at Springfield University. Skills: Python.")
	got, err := svc.Parse(context.Background(), bytes.NewReader(pdf))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Education) == 0 || got.Education[0] != "Jane Doe studied at Springfield University." {
		t.Fatalf("education = %v", got.Education)
	}
	// The bundled model has no SKILL label.
	if len(got.Skills) != 0 {
		t.Fatalf("expected no skills from the general model, got %v", got.Skills)
	}
}

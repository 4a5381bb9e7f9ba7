package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"resume-parser/internal/extract"
	"resume-parser/internal/nlp"
)

var educationMarkers = []string{"University", "College"}

// Service runs the extract → analyze → filter pipeline.
type Service struct {
	Analyzer nlp.Analyzer
}

// NewService constructs a Service around a loaded analyzer.
func NewService(analyzer nlp.Analyzer) *Service {
	return &Service{Analyzer: analyzer}
}

// Parse extracts the upload's text and pulls skills and education sentences out of it.
func (s *Service) Parse(ctx context.Context, r io.Reader) (Parsed, error) {
	if r == nil {
		return Parsed{}, ErrMissingFile
	}
	if s == nil || s.Analyzer == nil {
		return Parsed{}, fmt.Errorf("%w: analyzer not configured", ErrAnalysis)
	}

	res, err := extract.FromReader(ctx, r)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, extract.ErrUnparseable):
			return Parsed{}, fmt.Errorf("%w: %v", ErrUnparseablePDF, err)
		default:
			return Parsed{}, err
		}
	}

	doc, err := s.Analyzer.Analyze(ctx, res.Text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Parsed{}, ctxErr
		}
		return Parsed{}, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	return Parsed{
		Skills:    SkillsFrom(doc),
		Education: EducationFrom(doc),
		RawText:   Truncate(res.Text, RawTextLimit),
		Pages:     res.Pages,
		MimeType:  res.MimeType,
	}, nil
}

// SkillsFrom returns the text of every SKILL entity in analyzer order, duplicates kept.
func SkillsFrom(doc nlp.Document) []string {
	out := make([]string, 0)
	for _, ent := range doc.Entities {
		if ent.Label == nlp.SkillLabel {
			out = append(out, ent.Text)
		}
	}
	return out
}

// EducationFrom returns the sentences mentioning a university or college.
// Matching is a case-sensitive substring test.
func EducationFrom(doc nlp.Document) []string {
	out := make([]string, 0)
	for _, sent := range doc.Sentences {
		for _, marker := range educationMarkers {
			if strings.Contains(sent.Text, marker) {
				out = append(out, sent.Text)
				break
			}
		}
	}
	return out
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Package nlp wraps the document analyzers that label entities and split sentences.
package nlp

import (
	"context"
	"errors"
)

// SkillLabel is the entity label résumé skills are tagged with.
const SkillLabel = "SKILL"

// ErrMalformedResponse is returned when a remote analyzer answers with unusable output.
var ErrMalformedResponse = errors.New("malformed analyzer response")

// Entity is a labeled text span.
type Entity struct {
	Text  string
	Label string
}

// Sentence is one sentence span as delimited by the analyzer.
type Sentence struct {
	Text string
}

// Document is the read-only analysis of a text.
type Document struct {
	Entities  []Entity
	Sentences []Sentence
}

// Analyzer produces entities and sentence spans for raw text.
// Implementations are built once and must be safe for concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Document, error)
	Name() string
}

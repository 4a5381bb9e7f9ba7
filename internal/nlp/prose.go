package nlp

import (
	"context"
	"fmt"
	"os"

	"github.com/jdkato/prose/v2"
)

// ProseAnalyzer runs the prose pipeline (tokenize, segment, tag, extract).
type ProseAnalyzer struct {
	model *prose.Model
	name  string
}

// NewProseAnalyzer loads the NER model once. An empty modelDir selects the bundled
// general-purpose English model, which never emits SKILL entities; a directory
// written by TrainSkillModel adds them.
func NewProseAnalyzer(modelDir string) (*ProseAnalyzer, error) {
	if modelDir != "" {
		if _, err := os.Stat(modelDir); err != nil {
			return nil, fmt.Errorf("skill model dir: %w", err)
		}
		return &ProseAnalyzer{model: prose.ModelFromDisk(modelDir), name: "prose:" + modelDir}, nil
	}

	// NewDocument builds the default model when none is given; keep that one.
	warm, err := prose.NewDocument("Model warm up.")
	if err != nil {
		return nil, fmt.Errorf("load default prose model: %w", err)
	}
	return &ProseAnalyzer{model: warm.Model, name: "prose:default"}, nil
}

// Analyze implements Analyzer.
func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var opts []prose.DocOpt
	if a.model != nil {
		opts = append(opts, prose.UsingModel(a.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return Document{}, fmt.Errorf("prose document: %w", err)
	}

	out := Document{
		Entities:  make([]Entity, 0),
		Sentences: make([]Sentence, 0),
	}
	for _, ent := range doc.Entities() {
		out.Entities = append(out.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	for _, sent := range doc.Sentences() {
		out.Sentences = append(out.Sentences, Sentence{Text: sent.Text})
	}
	return out, nil
}

// Name implements Analyzer.
func (a *ProseAnalyzer) Name() string {
	return a.name
}

var _ Analyzer = (*ProseAnalyzer)(nil)

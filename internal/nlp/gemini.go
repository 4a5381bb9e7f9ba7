package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"resume-parser/internal/shared/telemetry"
)

const geminiPrompt = `You are a résumé analyzer. Read the résumé text between the markers and return JSON only:
{"entities":[{"text":"<span copied verbatim>","label":"SKILL|ORG|PERSON|GPE|DATE"}],"sentences":["<each sentence copied verbatim, in order>"]}
Label every technical or professional skill as SKILL. Copy spans exactly as they appear.
<<<RESUME
%s
RESUME>>>`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer asks a Gemini model for entities and sentences.
type GeminiAnalyzer struct {
	models contentGenerator
	model  string
}

// NewGeminiAnalyzer builds a Gemini API client.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("gemini model name cannot be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiAnalyzer{models: client.Models, model: model}, nil
}

// Analyze implements Analyzer.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, text string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Document{Entities: []Entity{}, Sentences: []Sentence{}}, nil
	}

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(fmt.Sprintf(geminiPrompt, text)), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Document{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return Document{}, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	return parseGeminiDocument(resp.Text(), text)
}

// Name implements Analyzer.
func (a *GeminiAnalyzer) Name() string {
	return "gemini:" + a.model
}

// parseGeminiDocument reads the model's JSON. Spans that do not occur verbatim in
// source are dropped so the result stays a view over the extracted text.
func parseGeminiDocument(raw, source string) (Document, error) {
	clean := stripCodeFence(raw)
	if !gjson.Valid(clean) {
		return Document{}, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}

	doc := Document{Entities: []Entity{}, Sentences: []Sentence{}}
	dropped := 0

	gjson.Get(clean, "entities").ForEach(func(_, v gjson.Result) bool {
		text := v.Get("text").String()
		label := strings.ToUpper(strings.TrimSpace(v.Get("label").String()))
		if text == "" || label == "" || !strings.Contains(source, text) {
			dropped++
			return true
		}
		doc.Entities = append(doc.Entities, Entity{Text: text, Label: label})
		return true
	})
	gjson.Get(clean, "sentences").ForEach(func(_, v gjson.Result) bool {
		text := v.String()
		if text == "" || !strings.Contains(source, text) {
			dropped++
			return true
		}
		doc.Sentences = append(doc.Sentences, Sentence{Text: text})
		return true
	})

	if dropped > 0 {
		telemetry.Warn("nlp.gemini.dropped_spans", map[string]any{"dropped": dropped})
	}
	return doc, nil
}

func stripCodeFence(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

var _ Analyzer = (*GeminiAnalyzer)(nil)

package nlp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// DefaultSkillTemplates place a skill into résumé-like sentences; %s is the skill.
var DefaultSkillTemplates = []string{
	"Skills: %s.",
	"Proficient in %s and related tooling.",
	"Built production services using %s.",
	"Experience with %s in a team setting.",
}

const orgLabel = "ORG"

// DefaultInstitutions are schools and employers used as non-skill training context.
var DefaultInstitutions = []string{
	"Springfield University",
	"Shelbyville College",
	"Ogdenville University",
	"Capital City Community College",
	"Stanford University",
	"Boston College",
	"Acme Corporation",
	"Globex Inc",
}

// DefaultContextTemplates place an institution into résumé-like sentences; %s is the name.
var DefaultContextTemplates = []string{
	"Jane Doe studied at %s.",
	"Graduated from %s with honors.",
	"Bachelor of Science, %s.",
	"Worked as an engineer at %s for three years.",
}

// ContextExamples labels institutions as ORG so capitalized names that are
// not skills get a class of their own.
func ContextExamples(institutions []string, templates []string) []prose.EntityContext {
	if len(templates) == 0 {
		templates = DefaultContextTemplates
	}
	return labeledExamples(institutions, templates, orgLabel)
}

// SkillExamples expands every skill into labeled training sentences.
func SkillExamples(skills []string, templates []string) []prose.EntityContext {
	if len(templates) == 0 {
		templates = DefaultSkillTemplates
	}
	return labeledExamples(skills, templates, SkillLabel)
}

func labeledExamples(values []string, templates []string, label string) []prose.EntityContext {
	var out []prose.EntityContext
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		for _, tmpl := range templates {
			text := fmt.Sprintf(tmpl, value)
			start := strings.Index(text, value)
			if start < 0 {
				continue
			}
			out = append(out, prose.EntityContext{
				Text:   text,
				Accept: true,
				Spans: []prose.LabeledEntity{{
					Start: start,
					End:   start + len(value),
					Label: label,
				}},
			})
		}
	}
	return out
}

// TrainSkillModel trains a prose NER model that tags the given skills as SKILL
// and writes it to dir for NewProseAnalyzer. DefaultInstitutions are mixed in
// as ORG so schools and employers are not mistaken for skills.
func TrainSkillModel(dir string, skills []string, templates []string) (int, error) {
	examples := SkillExamples(skills, templates)
	if len(examples) == 0 {
		return 0, errors.New("no skills to train on")
	}
	examples = append(examples, ContextExamples(DefaultInstitutions, nil)...)
	model := prose.ModelFromData("skills", prose.UsingEntities(examples))
	if err := model.Write(dir); err != nil {
		return 0, fmt.Errorf("write skill model: %w", err)
	}
	return len(examples), nil
}

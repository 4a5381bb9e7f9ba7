package recommendations

import (
	"sort"
	"strings"
	"time"

	"resume-parser/internal/jobs"
)

// DefaultLimit is how many jobs a recommendation returns.
const DefaultLimit = 5

// Match is a scored job.
type Match struct {
	Job           jobs.Job
	Score         float64
	MatchedSkills []string
}

// Rank scores each job by the share of its required skills present in skills,
// drops excluded jobs and jobs closed as of now, and returns the best limit matches.
// Ties keep the input order. Jobs without required skills score zero.
func Rank(candidates []jobs.Job, skills []string, exclude map[string]bool, limit int, now time.Time) []Match {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		if key := normalize(s); key != "" {
			have[key] = true
		}
	}
	if len(have) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(candidates))
	for _, job := range candidates {
		if exclude[job.ID] || job.Closed(now) {
			continue
		}
		matches = append(matches, score(job, have))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func score(job jobs.Job, have map[string]bool) Match {
	m := Match{Job: job, MatchedSkills: []string{}}
	if len(job.SkillsRequired) == 0 {
		return m
	}
	for _, s := range job.SkillsRequired {
		if have[normalize(s)] {
			m.MatchedSkills = append(m.MatchedSkills, s)
		}
	}
	m.Score = float64(len(m.MatchedSkills)) / float64(len(job.SkillsRequired))
	return m
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

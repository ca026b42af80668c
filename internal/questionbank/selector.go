package questionbank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crucible-hq/crucible/internal/domain"
)

// skillCategories maps an inferred skill tag to the question categories it
// unlocks. The values mirror the catalog's category names.
var skillCategories = map[string][]string{
	"react":      {"React Basics", "React Hooks", "React Concepts", "React Performance", "React Router", "Architecture"},
	"javascript": {"JavaScript Fundamentals", "React Concepts"},
	"typescript": {"React Concepts", "Architecture"},
	"css":        {"React Basics"},
	"node":       {"Architecture"},
}

// defaultSkills is assumed for candidates with nothing inferable.
var defaultSkills = []string{"react", "javascript", "css"}

// InferSkills derives a candidate's skill tags from explicit skill fields,
// falling back to keyword heuristics over the email address and resume
// filename, and finally to a generic default set. The result is sorted so
// repeated calls are stable.
func InferSkills(candidate *domain.Candidate) []string {
	skills := make(map[string]struct{})
	if candidate != nil {
		for _, s := range candidate.Skills {
			skills[strings.ToLower(s)] = struct{}{}
		}
		text := strings.ToLower(candidate.Email + " " + candidate.Filename)
		if strings.Contains(text, "react") {
			skills["react"] = struct{}{}
		}
		if strings.Contains(text, "node") {
			skills["node"] = struct{}{}
		}
		if strings.Contains(text, "ts") || strings.Contains(text, "typescript") {
			skills["typescript"] = struct{}{}
		}
	}
	if len(skills) == 0 {
		return append([]string(nil), defaultSkills...)
	}

	out := make([]string, 0, len(skills))
	for s := range skills {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SelectQuestion returns the question for a global interview index (0..5),
// personalized to the candidate. Selection is deterministic for fixed inputs:
// resuming a session reproduces the same question for a given index.
func (b *Bank) SelectQuestion(candidate *domain.Candidate, globalIndex int) (domain.Question, error) {
	if globalIndex < 0 || globalIndex >= domain.TotalQuestions {
		return domain.Question{}, fmt.Errorf("question index %d out of range: %w", globalIndex, domain.ErrInvalidInput)
	}

	difficulty := domain.DifficultyForIndex(globalIndex)
	localIndex := domain.LocalIndex(globalIndex)

	all := b.tiers[difficulty]
	if len(all) == 0 {
		return domain.Question{}, fmt.Errorf("tier %s: %w", difficulty, domain.ErrEmptyTier)
	}

	preferred := make(map[string]struct{})
	for _, skill := range InferSkills(candidate) {
		for _, category := range skillCategories[skill] {
			preferred[category] = struct{}{}
		}
	}

	pool := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if _, ok := preferred[q.Category]; ok {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = all
	}

	return pool[localIndex%len(pool)], nil
}

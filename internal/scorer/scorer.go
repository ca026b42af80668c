// Package scorer turns a completed answer set into a numeric score, a
// per-question breakdown, and a narrative summary. The heuristics simulate an
// AI reviewer: answer length, time efficiency, and keyword overlap, plus a
// bounded random perturbation for realism. The random source is injectable so
// tests can pin exact outputs.
package scorer

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
)

// Rand is the subset of math/rand used by the scorer. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Base scores per difficulty. Max attainable raw total for a full interview
// is 2*15 + 2*25 + 2*35 = 150.
const (
	baseEasy    = 15.0
	baseMedium  = 25.0
	baseHard    = 35.0
	baseUnknown = 20.0
)

// factorNormalizer scales the combined length/time/keyword factors
// (1.0 + 0.2 + 0.3 at most) back toward a 0..1 multiplier.
const factorNormalizer = 1.4

// keywords simulates model knowledge: per-tier terms whose presence in an
// answer raises its score, capped at a 30% contribution.
var keywords = map[domain.Difficulty][]string{
	domain.DifficultyEasy:   {"variable", "const", "let", "jsx", "react", "component", "event", "state", "hook"},
	domain.DifficultyMedium: {"state management", "props", "lifecycle", "effect", "router", "navigation"},
	domain.DifficultyHard:   {"performance", "optimization", "ssr", "csr", "reconciliation", "virtual dom", "architecture"},
}

// BreakdownEntry is the per-question percentage score.
type BreakdownEntry struct {
	Index      int               `json:"index"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Score      int               `json:"score"`
}

// Result is the aggregate scoring outcome.
type Result struct {
	FinalScore int              `json:"finalScore"`
	Breakdown  []BreakdownEntry `json:"breakdown"`
}

// Scorer computes interview scores. Not safe for concurrent use; callers
// serialize access (the interview service runs one scoring pass at a time).
type Scorer struct {
	rng Rand
}

// New creates a scorer with the given random source.
func New(rng Rand) *Scorer {
	return &Scorer{rng: rng}
}

// NewDefault creates a scorer seeded from the current time.
func NewDefault() *Scorer {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Score computes the final 0..100 score and per-question breakdown for a
// completed answer set. An empty answer set yields score 0 and no breakdown.
func (s *Scorer) Score(answers []domain.Answer) Result {
	if len(answers) == 0 {
		return Result{FinalScore: 0, Breakdown: []BreakdownEntry{}}
	}

	var totalScore, maxPossible float64
	breakdown := make([]BreakdownEntry, 0, len(answers))

	for i, answer := range answers {
		raw, base := scoreAnswer(answer)
		totalScore += raw
		maxPossible += base
		breakdown = append(breakdown, BreakdownEntry{
			Index:      i,
			Difficulty: answer.Difficulty,
			Score:      int(math.Round(raw / base * 100)),
		})
	}

	percentage := totalScore / maxPossible * 100
	variation := (s.rng.Float64() - 0.5) * 10 // ±5 percentage points

	final := int(math.Round(percentage + variation))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return Result{FinalScore: final, Breakdown: breakdown}
}

// RawPercent computes the deterministic component of the aggregate score,
// before the random perturbation. Exposed for callers that need a stable
// value (reporting, tests).
func RawPercent(answers []domain.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	var totalScore, maxPossible float64
	for _, answer := range answers {
		raw, base := scoreAnswer(answer)
		totalScore += raw
		maxPossible += base
	}
	return totalScore / maxPossible * 100
}

// scoreAnswer returns the raw score and the maximum attainable base score for
// one answer. Empty answers score zero but still count toward the maximum.
func scoreAnswer(answer domain.Answer) (raw, base float64) {
	base = baseFor(answer.Difficulty)

	text := strings.TrimSpace(answer.Answer)
	if text == "" {
		return 0, base
	}

	lengthFactor := lengthScore(len(text))

	timeBonus := 0.0
	if answer.TimeLimit > 0 {
		efficiency := float64(answer.TimeLimit-answer.TimeUsed) / float64(answer.TimeLimit)
		if efficiency > 0 {
			timeBonus = efficiency * 0.2 // up to 20% for quick answers
		}
	}

	raw = base * (lengthFactor + timeBonus + keywordScore(text, answer.Difficulty)) / factorNormalizer
	if raw > base {
		raw = base
	}
	return raw, base
}

func baseFor(difficulty domain.Difficulty) float64 {
	switch difficulty {
	case domain.DifficultyEasy:
		return baseEasy
	case domain.DifficultyMedium:
		return baseMedium
	case domain.DifficultyHard:
		return baseHard
	default:
		return baseUnknown
	}
}

// lengthScore buckets answer length into a 0.2..1.0 factor.
func lengthScore(length int) float64 {
	switch {
	case length > 200:
		return 1.0
	case length > 100:
		return 0.8
	case length > 50:
		return 0.6
	case length > 20:
		return 0.4
	default:
		return 0.2
	}
}

// keywordScore returns the fraction of tier keywords present in the answer,
// capped at 0.3.
func keywordScore(answer string, difficulty domain.Difficulty) float64 {
	relevant := keywords[difficulty]
	if len(relevant) == 0 {
		return 0
	}

	lower := strings.ToLower(answer)
	matches := 0
	for _, keyword := range relevant {
		if strings.Contains(lower, keyword) {
			matches++
		}
	}

	score := float64(matches) / float64(len(relevant))
	if score > 0.3 {
		score = 0.3
	}
	return score
}

package scorer

import (
	"strings"
	"testing"

	"github.com/crucible-hq/crucible/internal/domain"
)

// fixedRand pins the perturbation to zero (Float64 0.5) and summary choice
// to the first option.
type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) Intn(n int) int   { return 0 }

func strongAnswer(difficulty domain.Difficulty, limit int) domain.Answer {
	text := strings.Repeat("state component react hook effect router performance architecture ", 5)
	return domain.Answer{
		Answer:     text,
		Difficulty: difficulty,
		TimeLimit:  limit,
		TimeUsed:   0,
	}
}

func TestScore_Empty(t *testing.T) {
	s := New(fixedRand{})

	result := s.Score(nil)
	if result.FinalScore != 0 {
		t.Errorf("FinalScore = %d; want 0", result.FinalScore)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("len(Breakdown) = %d; want 0", len(result.Breakdown))
	}
}

func TestScore_BlankAnswersScoreZero(t *testing.T) {
	s := New(fixedRand{})
	answers := []domain.Answer{
		{Answer: "", Difficulty: domain.DifficultyEasy, TimeLimit: 20},
		{Answer: "   ", Difficulty: domain.DifficultyMedium, TimeLimit: 60},
	}

	result := s.Score(answers)
	if result.FinalScore != 0 {
		t.Errorf("FinalScore = %d; want 0", result.FinalScore)
	}
	for _, entry := range result.Breakdown {
		if entry.Score != 0 {
			t.Errorf("Breakdown[%d].Score = %d; want 0", entry.Index, entry.Score)
		}
	}
}

func TestScore_PerfectAnswers(t *testing.T) {
	s := New(fixedRand{})
	answers := []domain.Answer{
		strongAnswer(domain.DifficultyEasy, 20),
		strongAnswer(domain.DifficultyEasy, 20),
		strongAnswer(domain.DifficultyMedium, 60),
		strongAnswer(domain.DifficultyMedium, 60),
		strongAnswer(domain.DifficultyHard, 120),
		strongAnswer(domain.DifficultyHard, 120),
	}

	// Long keyword-dense answers with a full time bonus cap at the base
	// score per question.
	result := s.Score(answers)
	if result.FinalScore != 100 {
		t.Errorf("FinalScore = %d; want 100", result.FinalScore)
	}
	if len(result.Breakdown) != 6 {
		t.Fatalf("len(Breakdown) = %d; want 6", len(result.Breakdown))
	}
	for i, entry := range result.Breakdown {
		if entry.Index != i {
			t.Errorf("Breakdown[%d].Index = %d; want %d", i, entry.Index, i)
		}
		if entry.Score != 100 {
			t.Errorf("Breakdown[%d].Score = %d; want 100", i, entry.Score)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	answers := []domain.Answer{
		{Answer: "components use state and props", Difficulty: domain.DifficultyEasy, TimeLimit: 20, TimeUsed: 10},
		{Answer: "effect cleanup on unmount", Difficulty: domain.DifficultyMedium, TimeLimit: 60, TimeUsed: 30},
	}

	first := New(fixedRand{}).Score(answers)
	second := New(fixedRand{}).Score(answers)
	if first.FinalScore != second.FinalScore {
		t.Errorf("scores differ: %d vs %d", first.FinalScore, second.FinalScore)
	}
}

func TestScore_Clamped(t *testing.T) {
	s := New(fixedRand{})
	answers := []domain.Answer{strongAnswer(domain.DifficultyHard, 120)}

	result := s.Score(answers)
	if result.FinalScore < 0 || result.FinalScore > 100 {
		t.Errorf("FinalScore = %d; want 0..100", result.FinalScore)
	}
}

func TestRawPercent(t *testing.T) {
	answers := []domain.Answer{
		strongAnswer(domain.DifficultyEasy, 20),
		{Answer: "", Difficulty: domain.DifficultyEasy, TimeLimit: 20},
	}

	// One capped answer and one blank one: 15/30 of the raw total.
	got := RawPercent(answers)
	if got != 50 {
		t.Errorf("RawPercent() = %v; want 50", got)
	}

	if got := RawPercent(nil); got != 0 {
		t.Errorf("RawPercent(nil) = %v; want 0", got)
	}
}

func TestLengthScore(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{201, 1.0},
		{200, 0.8},
		{101, 0.8},
		{100, 0.6},
		{51, 0.6},
		{50, 0.4},
		{21, 0.4},
		{20, 0.2},
		{1, 0.2},
	}
	for _, tt := range tests {
		if got := lengthScore(tt.length); got != tt.want {
			t.Errorf("lengthScore(%d) = %v; want %v", tt.length, got, tt.want)
		}
	}
}

func TestKeywordScore_Capped(t *testing.T) {
	answer := "variable const let jsx react component event state hook"
	if got := keywordScore(answer, domain.DifficultyEasy); got != 0.3 {
		t.Errorf("keywordScore() = %v; want 0.3", got)
	}
	if got := keywordScore("nothing relevant here", domain.DifficultyEasy); got != 0 {
		t.Errorf("keywordScore() = %v; want 0", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{100, BandExcellent},
		{85, BandExcellent},
		{84, BandGood},
		{70, BandGood},
		{69, BandAverage},
		{50, BandAverage},
		{49, BandPoor},
		{0, BandPoor},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%d) = %q; want %q", tt.score, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := New(fixedRand{})

	for _, score := range []int{95, 75, 55, 20} {
		got := s.Summarize(nil, score)
		want := summaries[BandFor(score)][0]
		if got != want {
			t.Errorf("Summarize(%d) = %q; want %q", score, got, want)
		}
	}
}

package domain

// Difficulty represents a question difficulty tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TotalQuestions is the fixed length of an interview: two questions per tier.
const TotalQuestions = 6

// DifficultyForIndex maps a global question index (0..5) to its tier:
// 0-1 easy, 2-3 medium, 4-5 hard.
func DifficultyForIndex(index int) Difficulty {
	switch {
	case index < 2:
		return DifficultyEasy
	case index < 4:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// LocalIndex maps a global question index to its position within the tier.
func LocalIndex(index int) int {
	switch {
	case index < 2:
		return index
	case index < 4:
		return index - 2
	default:
		return index - 4
	}
}

// Question is one entry of the interview question catalog. Immutable once
// loaded; only ever persisted as part of an active session snapshot.
type Question struct {
	ID             int        `json:"id" yaml:"id"`
	Text           string     `json:"text" yaml:"text"`
	TimeLimit      int        `json:"timeLimit" yaml:"time_limit"` // seconds
	Category       string     `json:"category" yaml:"category"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	ExpectedAnswer string     `json:"expectedAnswer" yaml:"expected_answer"`
}

// Valid reports whether a question is well-formed.
func (q *Question) Valid() bool {
	return q != nil &&
		q.ID > 0 &&
		q.Text != "" &&
		q.TimeLimit > 0 &&
		q.Category != "" &&
		(q.Difficulty == DifficultyEasy || q.Difficulty == DifficultyMedium || q.Difficulty == DifficultyHard)
}

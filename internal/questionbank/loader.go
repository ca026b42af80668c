package questionbank

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"github.com/crucible-hq/crucible/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBankYAML []byte

// BankFile represents the YAML structure of a question bank file
type BankFile struct {
	Name        string            `yaml:"name"`
	Version     string            `yaml:"version"`
	Description string            `yaml:"description"`
	Easy        []domain.Question `yaml:"easy"`
	Medium      []domain.Question `yaml:"medium"`
	Hard        []domain.Question `yaml:"hard"`
}

// Bank is the in-memory question catalog grouped by difficulty tier.
type Bank struct {
	Name    string
	Version string
	tiers   map[domain.Difficulty][]domain.Question
}

// Default returns the bank built into the binary.
func Default() *Bank {
	bank, err := parse(defaultBankYAML)
	if err != nil {
		// The embedded bank is validated by tests; failing to parse it is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("questionbank: embedded bank is invalid: %v", err))
	}
	return bank
}

// LoadFile loads a question bank from a YAML file on disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	bank, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("bank file %s: %w", path, err)
	}
	return bank, nil
}

func parse(data []byte) (*Bank, error) {
	var file BankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse bank yaml: %w", err)
	}

	bank := &Bank{
		Name:    file.Name,
		Version: file.Version,
		tiers:   make(map[domain.Difficulty][]domain.Question, 3),
	}

	for _, tier := range []struct {
		difficulty domain.Difficulty
		questions  []domain.Question
	}{
		{domain.DifficultyEasy, file.Easy},
		{domain.DifficultyMedium, file.Medium},
		{domain.DifficultyHard, file.Hard},
	} {
		if len(tier.questions) == 0 {
			return nil, fmt.Errorf("tier %s: %w", tier.difficulty, domain.ErrEmptyTier)
		}
		questions := make([]domain.Question, len(tier.questions))
		for i, q := range tier.questions {
			q.Difficulty = tier.difficulty
			if !q.Valid() {
				return nil, fmt.Errorf("tier %s question %d: %w", tier.difficulty, i, domain.ErrInvalidInput)
			}
			questions[i] = q
		}
		bank.tiers[tier.difficulty] = questions
	}

	return bank, nil
}

// Tier returns all questions for a difficulty.
func (b *Bank) Tier(difficulty domain.Difficulty) []domain.Question {
	return b.tiers[difficulty]
}

// ByDifficulty returns the question at index within a tier, cycling with
// modulo if the index exceeds the tier size.
func (b *Bank) ByDifficulty(difficulty domain.Difficulty, index int) (domain.Question, error) {
	questions := b.tiers[difficulty]
	if len(questions) == 0 {
		return domain.Question{}, fmt.Errorf("tier %s: %w", difficulty, domain.ErrEmptyTier)
	}
	return questions[index%len(questions)], nil
}

// Stats summarizes the catalog size per tier.
type Stats struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
	Total  int `json:"total"`
}

// Stats returns per-tier question counts.
func (b *Bank) Stats() Stats {
	s := Stats{
		Easy:   len(b.tiers[domain.DifficultyEasy]),
		Medium: len(b.tiers[domain.DifficultyMedium]),
		Hard:   len(b.tiers[domain.DifficultyHard]),
	}
	s.Total = s.Easy + s.Medium + s.Hard
	return s
}

// Sequence draws a full 6-question interview sequence (2 easy, 2 medium,
// 2 hard) without repeats within a tier, using the provided random source.
func (b *Bank) Sequence(rng *rand.Rand) ([]domain.Question, error) {
	var sequence []domain.Question
	for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		pool := b.tiers[difficulty]
		if len(pool) < 2 {
			return nil, fmt.Errorf("tier %s needs at least 2 questions: %w", difficulty, domain.ErrEmptyTier)
		}
		remaining := make([]domain.Question, len(pool))
		copy(remaining, pool)
		for i := 0; i < 2; i++ {
			pick := rng.Intn(len(remaining))
			sequence = append(sequence, remaining[pick])
			remaining = append(remaining[:pick], remaining[pick+1:]...)
		}
	}
	return sequence, nil
}

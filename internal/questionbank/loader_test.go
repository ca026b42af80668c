package questionbank

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/crucible-hq/crucible/internal/domain"
)

func TestDefault(t *testing.T) {
	bank := Default()

	stats := bank.Stats()
	if stats.Easy != 5 {
		t.Errorf("Stats().Easy = %d; want 5", stats.Easy)
	}
	if stats.Medium != 5 {
		t.Errorf("Stats().Medium = %d; want 5", stats.Medium)
	}
	if stats.Hard != 5 {
		t.Errorf("Stats().Hard = %d; want 5", stats.Hard)
	}
	if stats.Total != 15 {
		t.Errorf("Stats().Total = %d; want 15", stats.Total)
	}
}

func TestDefault_DifficultyStamped(t *testing.T) {
	bank := Default()

	for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		for _, q := range bank.Tier(difficulty) {
			if q.Difficulty != difficulty {
				t.Errorf("question %d difficulty = %q; want %q", q.ID, q.Difficulty, difficulty)
			}
		}
	}
}

func TestDefault_TimeLimits(t *testing.T) {
	bank := Default()

	limits := map[domain.Difficulty]int{
		domain.DifficultyEasy:   20,
		domain.DifficultyMedium: 60,
		domain.DifficultyHard:   120,
	}
	for difficulty, want := range limits {
		for _, q := range bank.Tier(difficulty) {
			if q.TimeLimit != want {
				t.Errorf("question %d time limit = %d; want %d", q.ID, q.TimeLimit, want)
			}
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := `name: custom
version: "2.0"
easy:
  - id: 1
    text: "What is a closure?"
    time_limit: 30
    category: "JavaScript Fundamentals"
medium:
  - id: 2
    text: "Explain event delegation"
    time_limit: 60
    category: "JavaScript Fundamentals"
hard:
  - id: 3
    text: "Implement a debounce function"
    time_limit: 90
    category: "JavaScript Fundamentals"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	bank, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if bank.Name != "custom" {
		t.Errorf("Name = %q; want %q", bank.Name, "custom")
	}
	if got := bank.Stats().Total; got != 3 {
		t.Errorf("Stats().Total = %d; want 3", got)
	}
}

func TestLoadFile_EmptyTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := `name: broken
easy:
  - id: 1
    text: "Only one tier"
    time_limit: 20
    category: "JavaScript Fundamentals"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile() expected error for empty tier")
	}
}

func TestByDifficulty_Cycles(t *testing.T) {
	bank := Default()

	first, err := bank.ByDifficulty(domain.DifficultyEasy, 0)
	if err != nil {
		t.Fatalf("ByDifficulty() error = %v", err)
	}
	wrapped, err := bank.ByDifficulty(domain.DifficultyEasy, 5)
	if err != nil {
		t.Fatalf("ByDifficulty() error = %v", err)
	}

	if first.ID != wrapped.ID {
		t.Errorf("index 5 should wrap to index 0: got %d, want %d", wrapped.ID, first.ID)
	}
}

func TestSequence(t *testing.T) {
	bank := Default()
	rng := rand.New(rand.NewSource(42))

	seq, err := bank.Sequence(rng)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}

	if len(seq) != domain.TotalQuestions {
		t.Fatalf("len(Sequence()) = %d; want %d", len(seq), domain.TotalQuestions)
	}

	wantTiers := []domain.Difficulty{
		domain.DifficultyEasy, domain.DifficultyEasy,
		domain.DifficultyMedium, domain.DifficultyMedium,
		domain.DifficultyHard, domain.DifficultyHard,
	}
	seen := make(map[int]bool)
	for i, q := range seq {
		if q.Difficulty != wantTiers[i] {
			t.Errorf("seq[%d] difficulty = %q; want %q", i, q.Difficulty, wantTiers[i])
		}
		if seen[q.ID] {
			t.Errorf("seq[%d] question %d repeated", i, q.ID)
		}
		seen[q.ID] = true
	}
}

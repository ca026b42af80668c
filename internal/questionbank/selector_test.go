package questionbank

import (
	"reflect"
	"testing"

	"github.com/crucible-hq/crucible/internal/domain"
)

func TestInferSkills_Explicit(t *testing.T) {
	c := &domain.Candidate{Skills: []string{"React", "TypeScript"}}

	got := InferSkills(c)
	want := []string{"react", "typescript"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InferSkills() = %v; want %v", got, want)
	}
}

func TestInferSkills_FromEmailAndFilename(t *testing.T) {
	c := &domain.Candidate{
		Email:    "dev@reactmail.com",
		Filename: "node_backend_resume.pdf",
	}

	got := InferSkills(c)
	for _, skill := range []string{"react", "node"} {
		found := false
		for _, s := range got {
			if s == skill {
				found = true
			}
		}
		if !found {
			t.Errorf("InferSkills() = %v; missing %q", got, skill)
		}
	}
}

func TestInferSkills_Default(t *testing.T) {
	got := InferSkills(&domain.Candidate{Name: "Ada", Email: "a@b.c"})
	want := []string{"react", "javascript", "css"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InferSkills() = %v; want %v", got, want)
	}
}

func TestInferSkills_NilCandidate(t *testing.T) {
	got := InferSkills(nil)
	if len(got) == 0 {
		t.Error("InferSkills(nil) should fall back to defaults")
	}
}

func TestSelectQuestion_Deterministic(t *testing.T) {
	bank := Default()
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com", Skills: []string{"react"}}

	for index := 0; index < domain.TotalQuestions; index++ {
		first, err := bank.SelectQuestion(c, index)
		if err != nil {
			t.Fatalf("SelectQuestion(%d) error = %v", index, err)
		}
		second, err := bank.SelectQuestion(c, index)
		if err != nil {
			t.Fatalf("SelectQuestion(%d) error = %v", index, err)
		}
		if first.ID != second.ID {
			t.Errorf("SelectQuestion(%d) not deterministic: %d then %d", index, first.ID, second.ID)
		}
	}
}

func TestSelectQuestion_TierMatchesIndex(t *testing.T) {
	bank := Default()
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com"}

	for index := 0; index < domain.TotalQuestions; index++ {
		q, err := bank.SelectQuestion(c, index)
		if err != nil {
			t.Fatalf("SelectQuestion(%d) error = %v", index, err)
		}
		if want := domain.DifficultyForIndex(index); q.Difficulty != want {
			t.Errorf("SelectQuestion(%d) difficulty = %q; want %q", index, q.Difficulty, want)
		}
	}
}

func TestSelectQuestion_SkillFilter(t *testing.T) {
	bank := Default()
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com", Skills: []string{"css"}}

	// css unlocks only React Basics; both easy picks must come from there.
	for index := 0; index < 2; index++ {
		q, err := bank.SelectQuestion(c, index)
		if err != nil {
			t.Fatalf("SelectQuestion(%d) error = %v", index, err)
		}
		if q.Category != "React Basics" {
			t.Errorf("SelectQuestion(%d) category = %q; want %q", index, q.Category, "React Basics")
		}
	}
}

func TestSelectQuestion_FallsBackToFullTier(t *testing.T) {
	bank := Default()
	// node unlocks only Architecture, which has no easy questions.
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com", Skills: []string{"node"}}

	q, err := bank.SelectQuestion(c, 0)
	if err != nil {
		t.Fatalf("SelectQuestion(0) error = %v", err)
	}
	if q.Difficulty != domain.DifficultyEasy {
		t.Errorf("fallback question difficulty = %q; want easy", q.Difficulty)
	}
}

func TestSelectQuestion_IndexOutOfRange(t *testing.T) {
	bank := Default()
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com"}

	if _, err := bank.SelectQuestion(c, -1); err == nil {
		t.Error("SelectQuestion(-1) expected error")
	}
	if _, err := bank.SelectQuestion(c, domain.TotalQuestions); err == nil {
		t.Errorf("SelectQuestion(%d) expected error", domain.TotalQuestions)
	}
}

func TestSelectQuestion_DistinctPerSlot(t *testing.T) {
	bank := Default()
	c := &domain.Candidate{Name: "Ada", Email: "ada@example.com", Skills: []string{"react"}}

	first, err := bank.SelectQuestion(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := bank.SelectQuestion(c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Errorf("slots 0 and 1 picked the same question %d", first.ID)
	}
}

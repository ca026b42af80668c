package intake

import (
	"errors"
	"strings"
	"testing"

	"github.com/crucible-hq/crucible/internal/domain"
)

func TestExtract_RejectsUnsupportedExtension(t *testing.T) {
	e := NewExtractorWithSeed(1)

	for _, filename := range []string{"resume.txt", "resume.png", "resume", "resume.pdf.exe"} {
		_, err := e.Extract(filename, 1024)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Extract(%q) error = %v; want ErrInvalidInput", filename, err)
		}
	}
}

func TestExtract_RejectsBadSize(t *testing.T) {
	e := NewExtractorWithSeed(1)

	if _, err := e.Extract("resume.pdf", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Extract(empty) error = %v; want ErrInvalidInput", err)
	}
	if _, err := e.Extract("resume.pdf", MaxFileSize+1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Extract(oversized) error = %v; want ErrInvalidInput", err)
	}
	if _, err := e.Extract("resume.pdf", MaxFileSize); err != nil {
		t.Errorf("Extract(at limit) error = %v; want nil", err)
	}
}

func TestExtract_AcceptsAllowedExtensions(t *testing.T) {
	e := NewExtractorWithSeed(1)

	for _, filename := range []string{"a.pdf", "a.doc", "a.docx", "a.PDF"} {
		if _, err := e.Extract(filename, 1024); err != nil {
			t.Errorf("Extract(%q) error = %v; want nil", filename, err)
		}
	}
}

func TestExtract_PopulatesProfile(t *testing.T) {
	e := NewExtractorWithSeed(7)

	ex, err := e.Extract("jane_doe_resume.pdf", 4096)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ex.Name != "Jane Doe" {
		t.Errorf("Name = %q; want %q", ex.Name, "Jane Doe")
	}
	if ex.Filename != "jane_doe_resume.pdf" {
		t.Errorf("Filename = %q; want original", ex.Filename)
	}
	if ex.FileSize != 4096 {
		t.Errorf("FileSize = %d; want 4096", ex.FileSize)
	}
	if len(ex.Skills) == 0 {
		t.Error("Skills empty; want a sample set")
	}
	if ex.ExtractedAt.IsZero() {
		t.Error("ExtractedAt not stamped")
	}
	if ex.Email != "" && !strings.HasSuffix(ex.Email, "@example.com") {
		t.Errorf("Email = %q; want example.com address", ex.Email)
	}
}

func TestExtract_MissingFieldsTracked(t *testing.T) {
	e := NewExtractorWithSeed(3)

	// A filename with nothing usable leaves the name blank, so "name"
	// must appear in the missing list regardless of the random draws.
	ex, err := e.Extract("resume_2024.pdf", 1024)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ex.Name != "" {
		t.Errorf("Name = %q; want empty", ex.Name)
	}
	found := false
	for _, f := range ex.MissingFields {
		if f == "name" {
			found = true
		}
	}
	if !found {
		t.Errorf("MissingFields = %v; want to include name", ex.MissingFields)
	}
	if ex.Email != "" {
		t.Errorf("Email = %q; want empty when no name could be derived", ex.Email)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	first, err := NewExtractorWithSeed(42).Extract("john_smith_cv.docx", 2048)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewExtractorWithSeed(42).Extract("john_smith_cv.docx", 2048)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if first.Email != second.Email || first.Phone != second.Phone {
		t.Errorf("same seed produced different contacts: %+v vs %+v", first, second)
	}
	if len(first.Skills) != len(second.Skills) {
		t.Errorf("same seed produced different skills: %v vs %v", first.Skills, second.Skills)
	}
}

func TestNameFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"john_doe_resume.pdf", "John Doe"},
		{"jane-smith-cv.docx", "Jane Smith"},
		{"Alice Johnson Resume.doc", "Alice Johnson"},
		{"bob.brown.final.2024.pdf", "Bob Brown"},
		{"resume.pdf", ""},
		{"cv_2023.docx", ""},
		{"maria_resume_final.pdf", "Maria"},
	}
	for _, tt := range tests {
		if got := NameFromFilename(tt.filename); got != tt.want {
			t.Errorf("NameFromFilename(%q) = %q; want %q", tt.filename, got, tt.want)
		}
	}
}

package intake

import (
	"errors"
	"strings"
	"testing"

	"github.com/crucible-hq/crucible/internal/domain"
)

func validForm() CandidateForm {
	return CandidateForm{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+1 555 000 0000",
		Skills:   []string{"react"},
		Filename: "ada_resume.pdf",
		FileSize: 2048,
	}
}

func TestFormValidate_OK(t *testing.T) {
	f := validForm()
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() error = %v; want nil", err)
	}
}

func TestFormValidate_PhoneOptional(t *testing.T) {
	f := validForm()
	f.Phone = ""
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() error = %v; want nil for empty phone", err)
	}
}

func TestFormValidate_MissingName(t *testing.T) {
	f := validForm()
	f.Name = ""

	err := f.Validate()
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Validate() error = %v; want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Validate() error = %q; want name message", err)
	}
}

func TestFormValidate_BadEmail(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"

	err := f.Validate()
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Validate() error = %v; want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "email must be a valid email address") {
		t.Errorf("Validate() error = %q; want email message", err)
	}
}

func TestFormValidate_ShortName(t *testing.T) {
	f := validForm()
	f.Name = "A"

	err := f.Validate()
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Validate() error = %v; want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "name must be at least 2 characters") {
		t.Errorf("Validate() error = %q; want name length message", err)
	}
}

func TestFormValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+1 555 000 0000", true},
		{"(555) 123-4567", true},
		{"555.123.4567", true},
		{"1234567", true},
		{"123456789012345", true},
		{"12345", false},
		{"1234567890123456", false},
		{"abcdefg", false},
		{"555-CALL-NOW", false},
	}

	for _, tt := range tests {
		f := validForm()
		f.Phone = tt.phone
		err := f.Validate()

		if tt.valid {
			if err != nil {
				t.Errorf("Validate() error = %v for phone %q; want nil", err, tt.phone)
			}
			continue
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Validate() error = %v for phone %q; want ErrInvalidInput", err, tt.phone)
		}
		if !strings.Contains(err.Error(), "phone must contain 7 to 15 digits") {
			t.Errorf("Validate() error = %q for phone %q; want phone message", err, tt.phone)
		}
	}
}

func TestFormValidate_MultipleErrors(t *testing.T) {
	f := CandidateForm{}

	err := f.Validate()
	if err == nil {
		t.Fatal("Validate() = nil; want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "name is required") || !strings.Contains(msg, "email is required") {
		t.Errorf("Validate() error = %q; want both name and email messages", msg)
	}
}

func TestFormCandidate(t *testing.T) {
	f := validForm()

	c := f.Candidate()
	if c.ID == "" {
		t.Error("ID empty; want generated")
	}
	if c.Name != f.Name || c.Email != f.Email || c.Phone != f.Phone {
		t.Errorf("identity = %q/%q/%q; want form values", c.Name, c.Email, c.Phone)
	}
	if c.Status != domain.StatusPending {
		t.Errorf("Status = %q; want %q", c.Status, domain.StatusPending)
	}
	if c.Filename != "ada_resume.pdf" || c.FileSize != 2048 {
		t.Errorf("intake metadata = %q/%d; want form values", c.Filename, c.FileSize)
	}
	if c.ExtractedAt == nil {
		t.Error("ExtractedAt = nil; want stamped when filename present")
	}
}

func TestFormCandidate_NoUpload(t *testing.T) {
	f := validForm()
	f.Filename = ""
	f.FileSize = 0

	c := f.Candidate()
	if c.ExtractedAt != nil {
		t.Errorf("ExtractedAt = %v; want nil without an upload", c.ExtractedAt)
	}
}

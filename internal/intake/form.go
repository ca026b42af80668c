package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for a blank tag name.
	if err := v.RegisterValidation("phone", validPhone); err != nil {
		panic(err)
	}
	return v
}

// validPhone accepts 7 to 15 digits, with an optional leading plus and
// common separators (spaces, dashes, dots, parentheses).
func validPhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// CandidateForm is the reviewed profile submitted after extraction. Name
// and email are required before an interview can start.
type CandidateForm struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"omitempty,phone"`
	Skills   []string `json:"skills"`
	Filename string   `json:"filename"`
	FileSize int64    `json:"fileSize"`
}

// Validate checks the form and returns a field-by-field error message.
func (f *CandidateForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var msgs []string
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "phone":
		return field + " must contain 7 to 15 digits"
	default:
		return field + " is invalid"
	}
}

// Candidate builds a roster candidate from the validated form.
func (f *CandidateForm) Candidate() *domain.Candidate {
	c := domain.NewCandidate(f.Name, f.Email, f.Phone)
	c.Skills = f.Skills
	c.Filename = f.Filename
	c.FileSize = f.FileSize
	if f.Filename != "" {
		now := time.Now()
		c.ExtractedAt = &now
	}
	return c
}

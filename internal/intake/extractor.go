// Package intake handles resume uploads: file checks, simulated field
// extraction, and validation of the resulting candidate profile.
//
// Extraction is a stand-in for a real parser. It derives a plausible name
// from the filename and draws contact details and skills from sample data,
// occasionally leaving fields blank so the review-and-correct flow gets
// exercised.
package intake

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/crucible-hq/crucible/internal/domain"
)

// MaxFileSize is the upload cap in bytes.
const MaxFileSize = 10 << 20 // 10 MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Extraction is the profile pulled from a resume. MissingFields lists the
// identity fields the parser could not fill in; the caller must collect
// them before the interview can start.
type Extraction struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Skills        []string  `json:"skills"`
	Filename      string    `json:"filename"`
	FileSize      int64     `json:"fileSize"`
	ExtractedAt   time.Time `json:"extractedAt"`
	MissingFields []string  `json:"missingFields"`
}

// Extractor produces simulated resume extractions.
type Extractor struct {
	rng *rand.Rand
}

// NewExtractor creates an extractor with its own random source.
func NewExtractor() *Extractor {
	return &Extractor{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewExtractorWithSeed creates a deterministic extractor for tests.
func NewExtractorWithSeed(seed int64) *Extractor {
	return &Extractor{rng: rand.New(rand.NewSource(seed))}
}

var sampleSkillSets = [][]string{
	{"react", "javascript", "css"},
	{"react", "typescript", "node"},
	{"javascript", "node", "css"},
	{"react", "javascript", "typescript"},
}

// Extract checks the upload and produces a simulated extraction. The file
// contents are never read; only the name and size matter here.
func (e *Extractor) Extract(filename string, size int64) (*Extraction, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q, want pdf, doc, or docx", domain.ErrInvalidInput, ext)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if size > MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d MB limit", domain.ErrInvalidInput, MaxFileSize>>20)
	}

	name := NameFromFilename(filename)
	ex := &Extraction{
		Name:        name,
		Filename:    filename,
		FileSize:    size,
		Skills:      sampleSkillSets[e.rng.Intn(len(sampleSkillSets))],
		ExtractedAt: time.Now(),
	}

	// Roughly one upload in five is missing the email, one in three the
	// phone number.
	if e.rng.Float64() >= 0.2 {
		ex.Email = emailFor(name)
	}
	if e.rng.Float64() >= 0.33 {
		ex.Phone = fmt.Sprintf("+1 555 %03d %04d", e.rng.Intn(1000), e.rng.Intn(10000))
	}

	if ex.Name == "" {
		ex.MissingFields = append(ex.MissingFields, "name")
	}
	if ex.Email == "" {
		ex.MissingFields = append(ex.MissingFields, "email")
	}
	if ex.Phone == "" {
		ex.MissingFields = append(ex.MissingFields, "phone")
	}

	return ex, nil
}

// NameFromFilename derives a human name from a resume filename like
// "john_doe_resume.pdf". Resume and CV markers are dropped and the
// remaining words are capitalized.
func NameFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	var words []string
	for _, p := range parts {
		lower := strings.ToLower(p)
		if lower == "resume" || lower == "cv" || lower == "final" || isDigits(p) {
			continue
		}
		words = append(words, capitalize(lower))
	}
	return strings.Join(words, " ")
}

func emailFor(name string) string {
	if name == "" {
		return ""
	}
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return slug + "@example.com"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

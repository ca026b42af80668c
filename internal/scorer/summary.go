package scorer

import "github.com/crucible-hq/crucible/internal/domain"

// Band buckets a final score into a narrative category.
type Band string

const (
	BandExcellent Band = "excellent" // >= 85
	BandGood      Band = "good"      // >= 70
	BandAverage   Band = "average"   // >= 50
	BandPoor      Band = "poor"
)

// BandFor returns the narrative band for a final score.
func BandFor(score int) Band {
	switch {
	case score >= 85:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandAverage
	default:
		return BandPoor
	}
}

// summaries holds the canned narrative strings per band. One is chosen at
// random per interview, so identical answer sets can produce different text;
// only the band is stable.
var summaries = map[Band][]string{
	BandExcellent: {
		"Exceptional candidate with deep technical knowledge and excellent problem-solving skills. Demonstrated strong understanding of React concepts and JavaScript fundamentals.",
		"Outstanding performance across all difficulty levels. Shows great potential for senior-level responsibilities with comprehensive technical expertise.",
		"Impressive technical depth and clear communication. Candidate exhibits strong foundational knowledge with practical application insights.",
	},
	BandGood: {
		"Solid technical foundation with room for growth. Good understanding of core concepts with some advanced knowledge gaps.",
		"Competent candidate with decent problem-solving abilities. Shows promise with continued learning and development.",
		"Good grasp of fundamentals with practical experience evident. Would benefit from exposure to more complex scenarios.",
	},
	BandAverage: {
		"Basic understanding of core concepts with significant learning opportunities. Shows potential with proper mentorship.",
		"Foundational knowledge present but lacks depth in advanced topics. Suitable for junior positions with growth trajectory.",
		"Demonstrates willingness to learn with basic technical competency. Would benefit from structured training programs.",
	},
	BandPoor: {
		"Limited technical knowledge with major gaps in fundamental concepts. Requires extensive training and support.",
		"Basic awareness of technologies but lacks practical understanding. Needs significant skill development.",
		"Minimal technical competency with unclear problem-solving approach. Consider entry-level position with intensive mentoring.",
	},
}

// Summarize generates the narrative summary for a scored interview, choosing
// one of several canned strings within the score's band.
func (s *Scorer) Summarize(answers []domain.Answer, finalScore int) string {
	options := summaries[BandFor(finalScore)]
	return options[s.rng.Intn(len(options))]
}

package validate

import (
	"regexp"
	"strings"
)

// Evidence quality is heuristic: concrete quantities, named clinicians, and
// explicit availability statements raise it; hedging and vague qualifiers
// lower it. The result is a continuous [0,1] value the trust scorer consumes
// directly, not a pass/fail flag.

type indicator struct {
	pattern *regexp.Regexp
	weight  float64
}

var strongIndicators = []indicator{
	{regexp.MustCompile(`(?i)\b\d+\s+(beds?|staff|doctors?|nurses?)\b`), 3.0},
	{regexp.MustCompile(`(?i)\b(dr\.|doctor|specialist)\s+\w+`), 2.5},
	{regexp.MustCompile(`(?i)\b24/7\b|\b24-hour\b|\bround-the-clock\b`), 2.0},
	{regexp.MustCompile(`(?i)\b(equipped|certified|licensed|accredited)\b`), 2.0},
	{regexp.MustCompile(`\b\d{4}\b`), 1.5}, // Years, e.g. "established 2015"
	{regexp.MustCompile(`(?i)\b(department|unit|ward|theatre)\b`), 1.5},
}

var weakIndicators = []indicator{
	{regexp.MustCompile(`(?i)\b(may|might|possibly|perhaps|sometimes)\b`), -2.0},
	{regexp.MustCompile(`(?i)\b(limited|minimal|basic|general)\b`), -1.5},
	{regexp.MustCompile(`(?i)\b(no|none|not|lacking|absent)\b`), -1.0},
	{regexp.MustCompile(`(?i)\bunknown\b`), -2.0},
}

// evidenceBase is the score for evidence with no indicators either way
const evidenceBase = 0.5

// ScoreEvidence rates a claim's evidence snippets in [0,1].
// No evidence at all scores zero.
func ScoreEvidence(evidence []string) float64 {
	if len(evidence) == 0 {
		return 0.0
	}

	text := strings.Join(evidence, " ")
	if strings.TrimSpace(text) == "" {
		return 0.0
	}

	adjustment := 0.0
	for _, ind := range strongIndicators {
		adjustment += float64(len(ind.pattern.FindAllString(text, -1))) * ind.weight
	}
	for _, ind := range weakIndicators {
		adjustment += float64(len(ind.pattern.FindAllString(text, -1))) * ind.weight
	}

	score := evidenceBase + adjustment/10.0
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

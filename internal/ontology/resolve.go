package ontology

import (
	"strings"

	"github.com/ppiankov/caregap/internal/model"
)

// Normalize canonicalizes a free-text phrase for lookup: case-fold, trim,
// strip punctuation, collapse whitespace. Characters that carry meaning in
// medical shorthand (&, /, -) are kept so "a&e", "u/s" and "c-section"
// survive intact.
func Normalize(phrase string) string {
	var b strings.Builder
	b.Grow(len(phrase))

	lastSpace := true
	for _, r := range strings.ToLower(phrase) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '&', r == '/', r == '-':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ', r == '\t', r == '\n', r == '_':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// Punctuation dropped entirely
		}
	}

	return strings.TrimSpace(b.String())
}

// Resolve maps a free-text phrase onto the taxonomy. Lookup order: exact
// canonical code, then the synonym table. The mapping is single-valued so
// ties are impossible. No match returns Unresolved rather than a guess;
// fuzzy matching only runs when a similarity threshold was configured.
func (o *Ontology) Resolve(phrase string) model.Resolution {
	norm := Normalize(phrase)
	if norm == "" {
		return model.Unresolved(phrase)
	}

	if cached, found := o.memo.Get(norm); found {
		res := cached.(model.Resolution)
		if !res.Resolved {
			res.Phrase = phrase
		}
		return res
	}

	res := o.resolveNormalized(norm)
	o.memo.Set(norm, res, 0)

	if !res.Resolved {
		res.Phrase = phrase
	}
	return res
}

func (o *Ontology) resolveNormalized(norm string) model.Resolution {
	// Canonical codes use underscores; the normalized phrase uses spaces
	asCode := model.CapabilityCode(strings.ReplaceAll(norm, " ", "_"))
	if _, ok := o.capabilities[asCode]; ok {
		return model.Resolved(asCode)
	}

	if code, ok := o.synonyms[norm]; ok {
		return model.Resolved(code)
	}

	if o.similarity > 0 {
		if code, ok := o.fuzzyMatch(norm); ok {
			return model.Resolved(code)
		}
	}

	return model.Unresolved(norm)
}

// fuzzyMatch finds the synonym with the highest token overlap at or above
// the configured threshold. Deterministic: equal scores break toward the
// lexicographically smaller synonym key.
func (o *Ontology) fuzzyMatch(norm string) (model.CapabilityCode, bool) {
	tokens := tokenSet(norm)
	if len(tokens) == 0 {
		return "", false
	}

	var (
		bestKey   string
		bestScore float64
		bestCode  model.CapabilityCode
	)

	for key, code := range o.synonyms {
		score := jaccard(tokens, tokenSet(key))
		if score > bestScore || (score == bestScore && bestKey != "" && key < bestKey) {
			bestScore = score
			bestKey = key
			bestCode = code
		}
	}

	if bestScore >= o.similarity {
		return bestCode, true
	}
	return "", false
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		out[tok] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

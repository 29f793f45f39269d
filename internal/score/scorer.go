// Package score computes deterministic, explainable trust scores for
// validated claims. Each component of the weighted formula is a separately
// testable function; the final score is just their composition.
package score

import (
	"github.com/ppiankov/caregap/internal/model"
)

// Tier cutoffs
const (
	highTrustCutoff   = 0.8
	mediumTrustCutoff = 0.5
)

// perFlagPenalty is the penalty step per non-dependency flag
const perFlagPenalty = 0.2

// Scorer computes trust scores under a fixed weight configuration.
// Scoring is a pure function of the ValidatedClaim: no hidden state, no
// randomness, identical inputs always produce identical scores.
type Scorer struct {
	weights model.Weights
}

// NewScorer creates a scorer. Callers validate weights via Config.Validate;
// the scorer itself never rejects input.
func NewScorer(weights model.Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the trust score and tier for one validated claim.
// Total over all input: out-of-range values are clamped, never rejected.
func (s *Scorer) Score(claim model.ValidatedClaim) model.ScoredClaim {
	trust := s.weights.Confidence*Confidence(claim) +
		s.weights.EvidenceQuality*EvidenceQuality(claim) +
		s.weights.DependencyConsistency*DependencyConsistency(claim) +
		s.weights.Availability*AvailabilityScore(claim.Raw.Availability) -
		s.weights.FlagPenalty*FlagPenalty(claim.Flags)

	trust = clamp01(trust)

	return model.ScoredClaim{
		ValidatedClaim: claim,
		Trust:          trust,
		Tier:           TierFor(trust),
	}
}

// ScoreBatch scores all claims of one facility
func (s *Scorer) ScoreBatch(claims []model.ValidatedClaim) []model.ScoredClaim {
	scored := make([]model.ScoredClaim, len(claims))
	for i, c := range claims {
		scored[i] = s.Score(c)
	}
	return scored
}

// Confidence is the extractor's self-reported confidence, clamped to [0,1]
func Confidence(claim model.ValidatedClaim) float64 {
	return clamp01(claim.Raw.Confidence)
}

// EvidenceQuality passes through the validator's continuous evidence score
func EvidenceQuality(claim model.ValidatedClaim) float64 {
	return clamp01(claim.EvidenceQuality)
}

// DependencyConsistency is 1.0 when no required prerequisite is missing,
// otherwise 1 - missing/required, floored at zero
func DependencyConsistency(claim model.ValidatedClaim) float64 {
	required := len(claim.RequiredDependencies)
	if required == 0 {
		return 1.0
	}
	missing := claim.MissingDependencyCount()
	if missing <= 0 {
		return 1.0
	}
	score := 1.0 - float64(missing)/float64(required)
	if score < 0 {
		return 0
	}
	return score
}

// AvailabilityScore is the fixed availability mapping. Labels outside the
// known set score like unknown, keeping the scorer total over noisy input.
func AvailabilityScore(a model.Availability) float64 {
	switch a {
	case model.AvailabilityAvailable, model.AvailabilityPermanent:
		return 1.0
	case model.AvailabilityLimited, model.AvailabilityIntermittent, model.AvailabilityVisiting:
		return 0.6
	case model.AvailabilityPlanned:
		return 0.3
	case model.AvailabilityUnavailable:
		return 0.0
	default:
		return 0.4
	}
}

// FlagPenalty grows linearly with each non-dependency flag, capped at 1.
// Missing-dependency flags are excluded: they already act through the
// dependency consistency term.
func FlagPenalty(flags []model.Flag) float64 {
	count := 0
	for _, f := range flags {
		if !f.IsMissingDependency() {
			count++
		}
	}
	penalty := perFlagPenalty * float64(count)
	if penalty > 1 {
		return 1
	}
	return penalty
}

// TierFor buckets a trust score. Stateless, no hysteresis: identical scores
// always produce identical tiers.
func TierFor(trust float64) model.TrustTier {
	switch {
	case trust >= highTrustCutoff:
		return model.TierHigh
	case trust >= mediumTrustCutoff:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

func clamp01(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package model

import "strings"

// CapabilityCode identifies a canonical capability in the taxonomy
type CapabilityCode string

// Availability describes how a claimed capability is offered
type Availability string

const (
	AvailabilityAvailable    Availability = "available"
	AvailabilityLimited      Availability = "limited"
	AvailabilityUnavailable  Availability = "unavailable"
	AvailabilityUnknown      Availability = "unknown"
	AvailabilityPermanent    Availability = "permanent"
	AvailabilityIntermittent Availability = "intermittent"
	AvailabilityVisiting     Availability = "visiting"
	AvailabilityPlanned      Availability = "planned"
)

// Known reports whether the label is one of the recognized availability values
func (a Availability) Known() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilityUnavailable,
		AvailabilityUnknown, AvailabilityPermanent, AvailabilityIntermittent,
		AvailabilityVisiting, AvailabilityPlanned:
		return true
	}
	return false
}

// Asserted reports whether the label asserts the capability is actually offered
func (a Availability) Asserted() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityPermanent, AvailabilityLimited,
		AvailabilityIntermittent, AvailabilityVisiting:
		return true
	}
	return false
}

// RawClaim is the external extractor's output for one capability mention.
// It is never mutated after creation.
type RawClaim struct {
	Capability   string       `json:"capability"`             // Free-text capability phrase
	Evidence     []string     `json:"evidence,omitempty"`     // Supporting text snippets
	Confidence   float64      `json:"confidence"`             // Extractor self-reported confidence [0,1]
	Availability Availability `json:"availability"`           // Availability label
	Dependencies []string     `json:"dependencies,omitempty"` // Free-text dependency mentions
}

// Resolution is the tagged result of mapping a phrase onto the taxonomy.
// Downstream code must check Resolved before using Code.
type Resolution struct {
	Resolved bool           `json:"resolved"`
	Code     CapabilityCode `json:"code,omitempty"`   // Set when Resolved
	Phrase   string         `json:"phrase,omitempty"` // Original phrase, kept for auditing
}

// Resolved constructs a successful resolution
func Resolved(code CapabilityCode) Resolution {
	return Resolution{Resolved: true, Code: code}
}

// Unresolved constructs a failed resolution carrying the original phrase
func Unresolved(phrase string) Resolution {
	return Resolution{Resolved: false, Phrase: phrase}
}

// Flag annotates a claim with a quality or consistency concern.
// Flags flow into the trust score as penalties; they never cause data loss.
type Flag string

const (
	FlagUnresolvedCapability Flag = "unresolved_capability"
	FlagImplausible          Flag = "implausible_for_facility_type"
	FlagContradiction        Flag = "contradicts_other_claim"
	FlagLowEvidenceQuality   Flag = "low_evidence_quality"
)

const missingDependencyPrefix = "missing_dependency:"

// MissingDependencyFlag builds the per-dependency flag for an absent prerequisite
func MissingDependencyFlag(code CapabilityCode) Flag {
	return Flag(missingDependencyPrefix + string(code))
}

// IsMissingDependency reports whether the flag marks an absent prerequisite
func (f Flag) IsMissingDependency() bool {
	return strings.HasPrefix(string(f), missingDependencyPrefix)
}

// MissingDependency returns the prerequisite code named by a missing_dependency flag
func (f Flag) MissingDependency() (CapabilityCode, bool) {
	if !f.IsMissingDependency() {
		return "", false
	}
	return CapabilityCode(strings.TrimPrefix(string(f), missingDependencyPrefix)), true
}

// ValidatedClaim is a RawClaim after ontology resolution and validation.
// The original claim is retained for provenance; nothing is dropped.
type ValidatedClaim struct {
	Raw        RawClaim   `json:"raw"`
	Capability Resolution `json:"capability"`

	// ResolvedDependencies are the dependency mentions that mapped onto the taxonomy
	ResolvedDependencies []CapabilityCode `json:"resolved_dependencies,omitempty"`

	// RequiredDependencies is the ontology's direct prerequisite set for the
	// resolved capability, recorded so scoring stays a pure function of this struct
	RequiredDependencies []CapabilityCode `json:"required_dependencies,omitempty"`

	Flags []Flag `json:"flags,omitempty"`

	// EvidenceQuality is the heuristic evidence score in [0,1]
	EvidenceQuality float64 `json:"evidence_quality"`
}

// HasFlag reports whether the claim carries the given flag
func (c ValidatedClaim) HasFlag(flag Flag) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// MissingDependencyCount counts missing_dependency flags on the claim
func (c ValidatedClaim) MissingDependencyCount() int {
	n := 0
	for _, f := range c.Flags {
		if f.IsMissingDependency() {
			n++
		}
	}
	return n
}

// TrustTier buckets a trust score for display and filtering
type TrustTier string

const (
	TierHigh   TrustTier = "high"   // score >= 0.8
	TierMedium TrustTier = "medium" // 0.5 <= score < 0.8
	TierLow    TrustTier = "low"    // score < 0.5
)

// ScoredClaim is a ValidatedClaim plus its trust score and tier
type ScoredClaim struct {
	ValidatedClaim
	Trust float64   `json:"trust"`
	Tier  TrustTier `json:"tier"`
}

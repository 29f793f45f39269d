// Package validate turns raw extracted claims into validated claims with
// quality and consistency flags. Validation only annotates, never discards:
// what to do with a flagged claim is the caller's policy decision.
package validate

import (
	"math"
	"strings"

	"github.com/ppiankov/caregap/internal/model"
	"github.com/ppiankov/caregap/internal/ontology"
)

// Validator validates one facility's claims as a unit. Contradiction and
// dependency checks need all of a facility's claims together, which is why
// the input is a FacilityBatch rather than a single claim.
type Validator struct {
	ont          *ontology.Ontology
	plausibility PlausibilityTable

	// lowEvidence is the evidence quality below which low_evidence_quality attaches
	lowEvidence float64
}

// NewValidator creates a validator over the shared read-only ontology
func NewValidator(ont *ontology.Ontology, table PlausibilityTable, lowEvidenceThreshold float64) *Validator {
	if table == nil {
		table = DefaultPlausibility()
	}
	return &Validator{
		ont:          ont,
		plausibility: table,
		lowEvidence:  lowEvidenceThreshold,
	}
}

// ValidateBatch validates all claims for one facility. A structurally
// invalid claim fails the whole facility with a MalformedClaimError; quality
// problems become flags instead. Pure function of its inputs.
func (v *Validator) ValidateBatch(batch model.FacilityBatch) ([]model.ValidatedClaim, error) {
	for i, raw := range batch.Claims {
		if err := checkStructure(batch.Facility.ID, i, raw); err != nil {
			return nil, err
		}
	}

	// First pass: resolve everything and collect the codes claimed for this
	// facility, which count as satisfied dependencies for sibling claims.
	resolutions := make([]model.Resolution, len(batch.Claims))
	claimed := make(map[model.CapabilityCode]bool)
	for i, raw := range batch.Claims {
		resolutions[i] = v.ont.Resolve(raw.Capability)
		if resolutions[i].Resolved {
			claimed[resolutions[i].Code] = true
		}
	}

	validated := make([]model.ValidatedClaim, len(batch.Claims))
	for i, raw := range batch.Claims {
		validated[i] = v.validateClaim(raw, resolutions[i], claimed, batch.Facility.Type)
	}

	v.flagContradictions(validated)

	return validated, nil
}

func checkStructure(facilityID string, index int, raw model.RawClaim) error {
	if strings.TrimSpace(raw.Capability) == "" {
		return &model.MalformedClaimError{FacilityID: facilityID, Index: index, Reason: "empty capability phrase"}
	}
	if raw.Availability == "" {
		return &model.MalformedClaimError{FacilityID: facilityID, Index: index, Reason: "missing availability label"}
	}
	if math.IsNaN(raw.Confidence) {
		return &model.MalformedClaimError{FacilityID: facilityID, Index: index, Reason: "confidence is NaN"}
	}
	return nil
}

func (v *Validator) validateClaim(
	raw model.RawClaim,
	res model.Resolution,
	claimed map[model.CapabilityCode]bool,
	facilityType string,
) model.ValidatedClaim {
	vc := model.ValidatedClaim{
		Raw:        raw,
		Capability: res,
	}

	// Dependency mentions that resolve count toward satisfaction even when
	// the facility has no standalone claim for them
	satisfied := make(map[model.CapabilityCode]bool, len(claimed))
	for code := range claimed {
		satisfied[code] = true
	}
	for _, phrase := range raw.Dependencies {
		if dep := v.ont.Resolve(phrase); dep.Resolved {
			vc.ResolvedDependencies = appendUnique(vc.ResolvedDependencies, dep.Code)
			satisfied[dep.Code] = true
		}
	}

	if !res.Resolved {
		vc.Flags = append(vc.Flags, model.FlagUnresolvedCapability)
	} else {
		// Resolve came back from the taxonomy, so the code is known
		required, _ := v.ont.DependenciesOf(res.Code)
		vc.RequiredDependencies = required
		for _, dep := range required {
			if !satisfied[dep] {
				vc.Flags = append(vc.Flags, model.MissingDependencyFlag(dep))
			}
		}

		if v.plausibility.Implausible(facilityType, res.Code) {
			vc.Flags = append(vc.Flags, model.FlagImplausible)
		}
	}

	vc.EvidenceQuality = ScoreEvidence(raw.Evidence)
	if vc.EvidenceQuality < v.lowEvidence {
		vc.Flags = append(vc.Flags, model.FlagLowEvidenceQuality)
	}

	return vc
}

// flagContradictions marks claims asserting the same resolved capability
// with conflicting availability. Both sides of the conflict are flagged:
// the validator has no basis to pick a winner.
func (v *Validator) flagContradictions(claims []model.ValidatedClaim) {
	byCode := make(map[model.CapabilityCode][]int)
	for i, c := range claims {
		if c.Capability.Resolved {
			byCode[c.Capability.Code] = append(byCode[c.Capability.Code], i)
		}
	}

	for _, indices := range byCode {
		if len(indices) < 2 {
			continue
		}
		asserted, denied := false, false
		for _, i := range indices {
			switch {
			case claims[i].Raw.Availability == model.AvailabilityUnavailable:
				denied = true
			case claims[i].Raw.Availability.Asserted():
				asserted = true
			}
		}
		if !asserted || !denied {
			continue
		}
		for _, i := range indices {
			a := claims[i].Raw.Availability
			if (a == model.AvailabilityUnavailable || a.Asserted()) && !claims[i].HasFlag(model.FlagContradiction) {
				claims[i].Flags = append(claims[i].Flags, model.FlagContradiction)
			}
		}
	}
}

func appendUnique(codes []model.CapabilityCode, code model.CapabilityCode) []model.CapabilityCode {
	for _, c := range codes {
		if c == code {
			return codes
		}
	}
	return append(codes, code)
}

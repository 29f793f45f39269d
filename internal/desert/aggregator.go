// Package desert rolls up scored claims into per-region coverage reports.
// Regions are supplied by the metadata collaborator; the aggregator never
// infers geography, and it produces no report for regions absent from the
// input. Absence of data is not absence of capability.
package desert

import (
	"sort"

	"github.com/ppiankov/caregap/internal/model"
	"github.com/ppiankov/caregap/internal/ontology"
)

// desertMissingThreshold mirrors the original detector: a region missing
// this many critical capabilities is flagged as a desert
const desertMissingThreshold = 3

// Aggregator classifies regional coverage of the ontology's critical set
type Aggregator struct {
	ont        *ontology.Ontology
	thresholds model.SeverityThresholds
}

// NewAggregator creates an aggregator over the shared ontology
func NewAggregator(ont *ontology.Ontology, thresholds model.SeverityThresholds) *Aggregator {
	return &Aggregator{ont: ont, thresholds: thresholds}
}

// Analyze produces one RegionReport per region present in the profiles.
// A claim covers a critical capability when it resolves to that code, its
// trust is at or above minTrust, and its availability is not unavailable.
// Fails fast with a ConfigurationError when the critical set is empty.
func (a *Aggregator) Analyze(profiles []model.FacilityProfile, minTrust float64) ([]model.RegionReport, error) {
	critical := a.ont.Critical()
	if len(critical) == 0 {
		return nil, model.Configurationf("ontology defines no critical capabilities")
	}

	type regionState struct {
		facilities int
		covered    map[model.CapabilityCode]bool
	}

	regions := make(map[string]*regionState)
	for _, profile := range profiles {
		state, ok := regions[profile.Facility.Region]
		if !ok {
			state = &regionState{covered: make(map[model.CapabilityCode]bool)}
			regions[profile.Facility.Region] = state
		}
		state.facilities++

		for _, claim := range profile.Claims {
			if !claim.Capability.Resolved {
				continue
			}
			if claim.Trust < minTrust {
				continue
			}
			if claim.Raw.Availability == model.AvailabilityUnavailable {
				continue
			}
			isCritical, err := a.ont.IsCritical(claim.Capability.Code)
			if err != nil {
				// Resolved codes come from the same ontology, so this cannot
				// happen outside programmer error
				return nil, err
			}
			if isCritical {
				state.covered[claim.Capability.Code] = true
			}
		}
	}

	reports := make([]model.RegionReport, 0, len(regions))
	for region, state := range regions {
		report := model.RegionReport{
			Region:          region,
			FacilitiesCount: state.facilities,
		}

		for _, code := range critical {
			if state.covered[code] {
				report.CriticalPresent = append(report.CriticalPresent, code)
			} else {
				report.CriticalMissing = append(report.CriticalMissing, code)
			}
		}

		missing := len(report.CriticalMissing)
		report.Severity = a.Severity(missing)
		report.IsDesert = missing >= desertMissingThreshold
		report.CoveragePercent = float64(len(critical)-missing) / float64(len(critical)) * 100

		reports = append(reports, report)
	}

	// Worst regions first, region name as stable tie-break
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Severity.Rank() != reports[j].Severity.Rank() {
			return reports[i].Severity.Rank() < reports[j].Severity.Rank()
		}
		return reports[i].Region < reports[j].Region
	})

	return reports, nil
}

// Severity classifies a missing-critical count. The thresholds partition
// the whole domain: every count maps to exactly one tier.
func (a *Aggregator) Severity(missingCount int) model.Severity {
	switch {
	case missingCount >= a.thresholds.Critical:
		return model.SeverityCritical
	case missingCount >= a.thresholds.Severe:
		return model.SeveritySevere
	case missingCount >= a.thresholds.Moderate:
		return model.SeverityModerate
	default:
		return model.SeverityMinimal
	}
}

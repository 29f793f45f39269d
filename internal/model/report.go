package model

import "time"

// Severity classifies how badly a region lacks critical capabilities
type Severity string

const (
	SeverityMinimal  Severity = "minimal"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from worst (0) to best, for sorting reports
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeveritySevere:
		return 1
	case SeverityModerate:
		return 2
	default:
		return 3
	}
}

// RegionReport is the per-region desert classification.
// Recomputed on every aggregation call; never persisted here.
type RegionReport struct {
	Region          string `json:"region"`
	FacilitiesCount int    `json:"facilities_count"`

	// CriticalPresent holds critical capability codes covered by at least one
	// claim at or above the minimum trust threshold
	CriticalPresent []CapabilityCode `json:"critical_capabilities_present"`
	CriticalMissing []CapabilityCode `json:"critical_capabilities_missing"`

	Severity        Severity `json:"severity"`
	IsDesert        bool     `json:"is_desert"`
	CoveragePercent float64  `json:"coverage_percentage"`
}

// FacilityFailure records a facility whose claims could not be processed.
// Failures never abort the rest of the batch.
type FacilityFailure struct {
	FacilityID string `json:"facility_id"`
	Error      string `json:"error"`
}

// BatchReport is the complete output of one pipeline run
type BatchReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	MinTrust    float64   `json:"min_trust"`

	Profiles []FacilityProfile `json:"profiles"`
	Regions  []RegionReport    `json:"regions"`
	Failures []FacilityFailure `json:"failures,omitempty"`
}

// DesertCount returns how many regions classified as deserts
func (r *BatchReport) DesertCount() int {
	n := 0
	for _, region := range r.Regions {
		if region.IsDesert {
			n++
		}
	}
	return n
}

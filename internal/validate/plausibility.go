package validate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/caregap/internal/model"
)

// PlausibilityTable maps a normalized facility type to the capability codes
// that are structurally implausible for it. The table is supplied by the
// metadata collaborator; unknown facility types constrain nothing.
type PlausibilityTable map[string][]model.CapabilityCode

// NormalizeFacilityType canonicalizes a declared facility type for lookup
func NormalizeFacilityType(facilityType string) string {
	t := strings.ToLower(strings.TrimSpace(facilityType))
	t = strings.ReplaceAll(t, "-", " ")
	return strings.Join(strings.Fields(t), "_")
}

// Implausible reports whether the capability is implausible for the facility type
func (t PlausibilityTable) Implausible(facilityType string, code model.CapabilityCode) bool {
	for _, c := range t[NormalizeFacilityType(facilityType)] {
		if c == code {
			return true
		}
	}
	return false
}

// LoadPlausibility reads a plausibility table from a YAML file
func LoadPlausibility(path string) (PlausibilityTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plausibility table: %w", err)
	}

	raw := make(map[string][]model.CapabilityCode)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse plausibility table: %w", err)
	}

	table := make(PlausibilityTable, len(raw))
	for facilityType, codes := range raw {
		table[NormalizeFacilityType(facilityType)] = codes
	}
	return table, nil
}

// DefaultPlausibility returns the built-in table for Ghana-style facility
// tiers plus the flat facility type ids used by the metadata source.
func DefaultPlausibility() PlausibilityTable {
	return PlausibilityTable{
		"chps": {
			"intensive_care_unit", "basic_surgery", "major_surgery", "cesarean_section",
			"cardiac_surgery", "neurosurgery", "ct_scan", "mri", "dialysis",
		},
		"chps_compound": {
			"intensive_care_unit", "basic_surgery", "major_surgery", "cesarean_section",
			"cardiac_surgery", "neurosurgery", "ct_scan", "mri", "dialysis",
		},
		"health_centre": {
			"intensive_care_unit", "major_surgery", "cardiac_surgery", "neurosurgery", "dialysis",
		},
		"clinic": {
			"intensive_care_unit", "major_surgery", "cardiac_surgery", "neurosurgery", "radiotherapy",
		},
		"pharmacy": {
			"emergency_care", "basic_surgery", "major_surgery", "intensive_care_unit", "maternity_delivery",
		},
		"doctor": {
			"intensive_care_unit", "major_surgery", "cardiac_surgery", "neurosurgery",
		},
		"dentist": {
			"intensive_care_unit", "maternity_delivery", "cardiac_surgery",
		},
		"district_hospital": {
			"cardiac_surgery", "neurosurgery",
		},
		// Regional and teaching hospitals can plausibly host anything tracked
		"regional_hospital": {},
		"teaching_hospital": {},
		"hospital":          {},
	}
}

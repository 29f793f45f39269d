package model

// Facility is the metadata collaborator's view of one healthcare facility.
// Region and facility type are supplied externally and never derived here.
type Facility struct {
	ID          string `json:"facility_id" yaml:"facility_id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"facility_type" yaml:"facility_type"` // e.g. "CHPS Compound", "District Hospital"
	Region      string `json:"region" yaml:"region"`
	District    string `json:"district,omitempty" yaml:"district,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// FacilityBatch is the unit of concurrent work: all raw claims for one
// facility together. Contradiction and dependency checks need the whole set,
// so the batch key is the facility, not the claim.
type FacilityBatch struct {
	Facility Facility   `json:"facility"`
	Claims   []RawClaim `json:"claims"`
}

// ProfileStats summarizes trust across a facility's scored claims
type ProfileStats struct {
	TotalClaims int     `json:"total_claims"`
	MeanTrust   float64 `json:"mean_trust"`
	HighTrust   int     `json:"high_trust"`
	MediumTrust int     `json:"medium_trust"`
	LowTrust    int     `json:"low_trust"`
}

// FacilityProfile groups a facility's scored claims for the reporting boundary
type FacilityProfile struct {
	Facility Facility      `json:"facility"`
	Claims   []ScoredClaim `json:"claims"`
	Stats    ProfileStats  `json:"stats"`
}

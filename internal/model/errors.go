package model

import "fmt"

// UnknownCapabilityError signals ontology misuse: a code that is not in the
// taxonomy was passed to an operation that requires one. Extractor output
// never triggers this, since phrases go through Resolve first.
type UnknownCapabilityError struct {
	Code CapabilityCode
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability code %q", e.Code)
}

// ConfigurationError signals malformed weights, thresholds, or ontology
// content (duplicate synonyms, empty critical set). Detected at load or
// validation time, never resolved silently at runtime.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Configurationf builds a ConfigurationError with a formatted reason
func Configurationf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// MalformedClaimError signals a structurally invalid RawClaim. Such claims
// are rejected before scoring: a score over garbage is worse than no score.
type MalformedClaimError struct {
	FacilityID string
	Index      int // Position of the claim within the facility batch
	Reason     string
}

func (e *MalformedClaimError) Error() string {
	return fmt.Sprintf("malformed claim %d for facility %q: %s", e.Index, e.FacilityID, e.Reason)
}

package desert

import (
	"math"
	"testing"

	"github.com/ppiankov/caregap/internal/model"
	"github.com/ppiankov/caregap/internal/ontology"
)

func defaultThresholds() model.SeverityThresholds {
	return model.SeverityThresholds{Critical: 6, Severe: 4, Moderate: 2}
}

// coveringClaim builds a scored claim that counts as coverage at minTrust 0.7
func coveringClaim(code model.CapabilityCode) model.ScoredClaim {
	return model.ScoredClaim{
		ValidatedClaim: model.ValidatedClaim{
			Raw:        model.RawClaim{Confidence: 0.9, Availability: model.AvailabilityAvailable},
			Capability: model.Resolved(code),
		},
		Trust: 0.9,
		Tier:  model.TierHigh,
	}
}

func profileIn(region, id string, claims ...model.ScoredClaim) model.FacilityProfile {
	return model.FacilityProfile{
		Facility: model.Facility{ID: id, Name: id, Region: region},
		Claims:   claims,
	}
}

func TestAnalyze_PartialCoverage(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	// 4 of the 9 critical capabilities covered, 5 missing
	profiles := []model.FacilityProfile{
		profileIn("Northern", "fac-1",
			coveringClaim("emergency_care"),
			coveringClaim("pharmacy"),
		),
		profileIn("Northern", "fac-2",
			coveringClaim("laboratory_services"),
			coveringClaim("pediatric_care"),
		),
	}

	reports, err := a.Analyze(profiles, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 region report, got %d", len(reports))
	}

	r := reports[0]
	if r.Region != "Northern" {
		t.Errorf("expected Northern, got %s", r.Region)
	}
	if r.FacilitiesCount != 2 {
		t.Errorf("expected 2 facilities, got %d", r.FacilitiesCount)
	}
	if len(r.CriticalPresent) != 4 {
		t.Errorf("expected 4 present, got %v", r.CriticalPresent)
	}
	if len(r.CriticalMissing) != 5 {
		t.Errorf("expected 5 missing, got %v", r.CriticalMissing)
	}
	if r.Severity != model.SeveritySevere {
		t.Errorf("expected severe for 5 missing, got %s", r.Severity)
	}
	if !r.IsDesert {
		t.Error("5 missing critical capabilities should classify as a desert")
	}
	if math.Abs(r.CoveragePercent-4.0/9.0*100) > 1e-9 {
		t.Errorf("expected coverage %.4f, got %v", 4.0/9.0*100, r.CoveragePercent)
	}
}

func TestAnalyze_LowTrustDoesNotCover(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	weak := coveringClaim("emergency_care")
	weak.Trust = 0.69

	reports, err := a.Analyze([]model.FacilityProfile{profileIn("Volta", "fac-1", weak)}, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports[0].CriticalPresent) != 0 {
		t.Errorf("a 0.69-trust claim must not cover at minTrust 0.7, got %v", reports[0].CriticalPresent)
	}
}

func TestAnalyze_UnavailableDoesNotCover(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	// High trust that the capability is NOT offered must not count as coverage
	denied := coveringClaim("emergency_care")
	denied.Raw.Availability = model.AvailabilityUnavailable

	reports, err := a.Analyze([]model.FacilityProfile{profileIn("Volta", "fac-1", denied)}, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports[0].CriticalPresent) != 0 {
		t.Errorf("an unavailable claim must not cover, got %v", reports[0].CriticalPresent)
	}
}

func TestAnalyze_UnresolvedAndNonCriticalIgnored(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	unresolved := model.ScoredClaim{
		ValidatedClaim: model.ValidatedClaim{
			Raw:        model.RawClaim{Confidence: 0.9, Availability: model.AvailabilityAvailable},
			Capability: model.Unresolved("quantum healing"),
		},
		Trust: 0.9,
	}

	reports, err := a.Analyze([]model.FacilityProfile{
		profileIn("Volta", "fac-1", unresolved, coveringClaim("telemedicine")),
	}, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports[0].CriticalPresent) != 0 {
		t.Errorf("unresolved and non-critical claims must not cover, got %v", reports[0].CriticalPresent)
	}
	if reports[0].Severity != model.SeverityCritical {
		t.Errorf("all 9 critical missing should be critical severity, got %s", reports[0].Severity)
	}
}

func TestAnalyze_NoFabricatedRegions(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	reports, err := a.Analyze([]model.FacilityProfile{
		profileIn("Ashanti", "fac-1", coveringClaim("pharmacy")),
	}, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only regions present in the input appear; absence of data is not a desert
	if len(reports) != 1 || reports[0].Region != "Ashanti" {
		t.Errorf("expected exactly the Ashanti report, got %+v", reports)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	reports, err := a.Analyze(nil, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports for no profiles, got %d", len(reports))
	}
}

func TestAnalyze_EmptyCriticalSetFails(t *testing.T) {
	ont, err := ontology.New(ontology.Definition{
		Capabilities: map[model.CapabilityCode]ontology.Capability{
			"telemedicine": {Label: "Telemedicine"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	a := NewAggregator(ont, defaultThresholds())
	_, err = a.Analyze([]model.FacilityProfile{profileIn("Volta", "fac-1")}, 0.7)
	if err == nil {
		t.Fatal("expected ConfigurationError for empty critical set")
	}
	if _, ok := err.(*model.ConfigurationError); !ok {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestAnalyze_SortedWorstFirst(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	full := make([]model.ScoredClaim, 0, 9)
	for _, code := range ontology.Default().Critical() {
		full = append(full, coveringClaim(code))
	}

	reports, err := a.Analyze([]model.FacilityProfile{
		profileIn("Greater Accra", "fac-1", full...),
		profileIn("Upper West", "fac-2"),
	}, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	if reports[0].Region != "Upper West" || reports[0].Severity != model.SeverityCritical {
		t.Errorf("worst region must sort first, got %+v", reports[0])
	}
	if reports[1].Severity != model.SeverityMinimal || reports[1].CoveragePercent != 100 {
		t.Errorf("fully covered region should be minimal at 100%%, got %+v", reports[1])
	}
	if reports[1].IsDesert {
		t.Error("fully covered region must not be a desert")
	}
}

func TestSeverity_Partition(t *testing.T) {
	a := NewAggregator(ontology.Default(), defaultThresholds())

	cases := map[int]model.Severity{
		0: model.SeverityMinimal,
		1: model.SeverityMinimal,
		2: model.SeverityModerate,
		3: model.SeverityModerate,
		4: model.SeveritySevere,
		5: model.SeveritySevere,
		6: model.SeverityCritical,
		9: model.SeverityCritical,
	}
	for missing, want := range cases {
		if got := a.Severity(missing); got != want {
			t.Errorf("Severity(%d) = %s, want %s", missing, got, want)
		}
	}
}

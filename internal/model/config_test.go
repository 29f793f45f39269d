package model

import (
	"math"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Confidence = 0.5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestConfigValidate_RejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Confidence = -0.1
	cfg.Weights.EvidenceQuality = 0.65 // sum stays 1.0, so only negativity can fail

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestConfigValidate_RejectsNaNWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.FlagPenalty = math.NaN()

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for NaN weight")
	}
}

func TestConfigValidate_MinTrustRange(t *testing.T) {
	for _, v := range []float64{-0.1, 1.1} {
		cfg := DefaultConfig()
		cfg.MinTrust = v
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for min_trust %v", v)
		}
	}

	for _, v := range []float64{0, 0.7, 1} {
		cfg := DefaultConfig()
		cfg.MinTrust = v
		if err := cfg.Validate(); err != nil {
			t.Errorf("min_trust %v should validate, got %v", v, err)
		}
	}
}

func TestConfigValidate_SeverityThresholdsDescending(t *testing.T) {
	cases := []SeverityThresholds{
		{Critical: 4, Severe: 4, Moderate: 2}, // critical == severe
		{Critical: 6, Severe: 2, Moderate: 4}, // severe < moderate
		{Critical: 6, Severe: 4, Moderate: 0}, // moderate below 1
	}
	for _, s := range cases {
		cfg := DefaultConfig()
		cfg.Severity = s
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for thresholds %+v", s)
		}
	}
}

func TestConfigValidate_RejectsNegativeConcurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Concurrency = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative concurrency")
	}
}

func TestFlag_MissingDependency(t *testing.T) {
	flag := MissingDependencyFlag("anesthesia")
	if !flag.IsMissingDependency() {
		t.Error("expected missing dependency flag")
	}
	code, ok := flag.MissingDependency()
	if !ok || code != "anesthesia" {
		t.Errorf("expected anesthesia, got %q (%v)", code, ok)
	}

	if FlagContradiction.IsMissingDependency() {
		t.Error("contradiction flag must not parse as missing dependency")
	}
	if _, ok := FlagContradiction.MissingDependency(); ok {
		t.Error("expected no dependency code from contradiction flag")
	}
}

func TestAvailability_Asserted(t *testing.T) {
	asserting := []Availability{
		AvailabilityAvailable, AvailabilityPermanent, AvailabilityLimited,
		AvailabilityIntermittent, AvailabilityVisiting,
	}
	for _, a := range asserting {
		if !a.Asserted() {
			t.Errorf("%s should assert the capability", a)
		}
	}

	for _, a := range []Availability{AvailabilityUnavailable, AvailabilityUnknown, AvailabilityPlanned, "garbage"} {
		if a.Asserted() {
			t.Errorf("%s should not assert the capability", a)
		}
	}
}

package model

import (
	"math"
	"runtime"
	"time"
)

// Weights are the trust formula coefficients. All five must sum to 1.0;
// the flag penalty weight acts subtractively in the formula.
type Weights struct {
	Confidence            float64 `json:"confidence" yaml:"confidence"`
	EvidenceQuality       float64 `json:"evidence_quality" yaml:"evidence_quality"`
	DependencyConsistency float64 `json:"dependency_consistency" yaml:"dependency_consistency"`
	Availability          float64 `json:"availability" yaml:"availability"`
	FlagPenalty           float64 `json:"flag_penalty" yaml:"flag_penalty"`
}

// SeverityThresholds are the minimum missing-critical counts per tier.
// They must be strictly descending so the classification partitions the domain.
type SeverityThresholds struct {
	Critical int `json:"critical" yaml:"critical"` // missing >= Critical
	Severe   int `json:"severe" yaml:"severe"`     // Severe <= missing < Critical
	Moderate int `json:"moderate" yaml:"moderate"` // Moderate <= missing < Severe
}

// CacheConfig controls the extraction response cache
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Dir     string        `json:"dir" yaml:"dir"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// LLMConfig configures the optional extraction collaborator. The validation,
// scoring, and aggregation core never reads this.
type LLMConfig struct {
	Provider          string  `json:"provider" yaml:"provider"` // "" disables extraction
	Model             string  `json:"model" yaml:"model"`
	APIKey            string  `json:"-" yaml:"-"`
	BaseURL           string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTokens         int     `json:"max_tokens" yaml:"max_tokens"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// Config is the full runtime configuration
type Config struct {
	// MinTrust is the coverage threshold for desert aggregation
	MinTrust float64 `json:"min_trust" yaml:"min_trust"`

	// LowEvidenceThreshold marks claims below it with low_evidence_quality
	LowEvidenceThreshold float64 `json:"low_evidence_threshold" yaml:"low_evidence_threshold"`

	// SimilarityThreshold enables fuzzy synonym matching when > 0.
	// Off by default: the resolver never guesses.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	Weights  Weights            `json:"weights" yaml:"weights"`
	Severity SeverityThresholds `json:"severity_thresholds" yaml:"severity_thresholds"`

	// Concurrency is the number of parallel facility workers
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// OntologyPath and PlausibilityPath override the built-in tables when set
	OntologyPath     string `json:"ontology_path,omitempty" yaml:"ontology_path,omitempty"`
	PlausibilityPath string `json:"plausibility_path,omitempty" yaml:"plausibility_path,omitempty"`

	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	LLM    LLMConfig    `json:"llm" yaml:"llm"`
	Output OutputConfig `json:"output" yaml:"output"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		MinTrust:             0.7,
		LowEvidenceThreshold: 0.3,
		SimilarityThreshold:  0,
		Weights: Weights{
			Confidence:            0.30,
			EvidenceQuality:       0.25,
			DependencyConsistency: 0.20,
			Availability:          0.15,
			FlagPenalty:           0.10,
		},
		Severity: SeverityThresholds{
			Critical: 6,
			Severe:   4,
			Moderate: 2,
		},
		Concurrency: runtime.NumCPU(),
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".caregap-cache",
			TTL:     7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:          "",
			TimeoutSeconds:    30,
			MaxTokens:         2000,
			RequestsPerSecond: 2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

const weightSumTolerance = 1e-9

// Validate rejects configurations that would make scoring or aggregation
// undefined. Returns a ConfigurationError describing the first problem found.
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"confidence":             w.Confidence,
		"evidence_quality":       w.EvidenceQuality,
		"dependency_consistency": w.DependencyConsistency,
		"availability":           w.Availability,
		"flag_penalty":           w.FlagPenalty,
	} {
		if v < 0 || math.IsNaN(v) {
			return Configurationf("weight %s must be non-negative, got %v", name, v)
		}
	}

	sum := w.Confidence + w.EvidenceQuality + w.DependencyConsistency + w.Availability + w.FlagPenalty
	if math.Abs(sum-1.0) > weightSumTolerance {
		return Configurationf("weights must sum to 1.0, got %v", sum)
	}

	if c.MinTrust < 0 || c.MinTrust > 1 {
		return Configurationf("min_trust must be in [0,1], got %v", c.MinTrust)
	}

	s := c.Severity
	if s.Moderate < 1 || s.Severe <= s.Moderate || s.Critical <= s.Severe {
		return Configurationf("severity thresholds must satisfy critical > severe > moderate >= 1, got %d/%d/%d",
			s.Critical, s.Severe, s.Moderate)
	}

	if c.Concurrency < 0 {
		return Configurationf("concurrency must be non-negative, got %d", c.Concurrency)
	}

	return nil
}

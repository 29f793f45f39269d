package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := loadConfig()
	if cfg.MinTrust != 0.7 {
		t.Errorf("expected default min trust 0.7, got %v", cfg.MinTrust)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadConfig_ViperOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("min_trust", 0.55)
	viper.Set("concurrency", 3)
	viper.Set("weights.confidence", 0.40)
	viper.Set("weights.evidence_quality", 0.15)
	viper.Set("llm.provider", "groq")
	viper.Set("output.include_footer", false)

	cfg := loadConfig()
	if cfg.MinTrust != 0.55 {
		t.Errorf("expected min trust 0.55, got %v", cfg.MinTrust)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
	}
	if cfg.Weights.Confidence != 0.40 || cfg.Weights.EvidenceQuality != 0.15 {
		t.Errorf("weights not overridden: %+v", cfg.Weights)
	}
	// Keys not set keep their defaults
	if cfg.Weights.DependencyConsistency != 0.20 {
		t.Errorf("untouched weight changed: %v", cfg.Weights.DependencyConsistency)
	}
	if cfg.LLM.Provider != "groq" {
		t.Errorf("expected provider groq, got %q", cfg.LLM.Provider)
	}
	if cfg.Output.IncludeFooter {
		t.Error("expected footer disabled")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "min_trust: 0.6\nseverity_thresholds:\n  critical: 7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg := loadConfig()
	if cfg.MinTrust != 0.6 {
		t.Errorf("expected min trust 0.6 from file, got %v", cfg.MinTrust)
	}
	if cfg.Severity.Critical != 7 {
		t.Errorf("expected critical threshold 7 from file, got %d", cfg.Severity.Critical)
	}
	if cfg.Severity.Severe != 4 {
		t.Errorf("unset threshold must keep its default, got %d", cfg.Severity.Severe)
	}
}

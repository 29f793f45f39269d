package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/caregap/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "caregap",
	Short: "caregap - Capability coverage & medical desert diagnostics",
	Long: `Caregap converts free-text healthcare facility descriptions into
normalized, evidence-backed, trust-scored capability claims and aggregates
them by region to detect coverage deserts.

It does not determine whether a facility actually delivers a service.

Caregap evaluates how well each capability claim is supported by its
evidence, how consistent it is with its prerequisites and facility type,
and which regions lack trusted coverage of critical capabilities.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for caregap.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("caregap v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.caregap/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.caregap")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CAREGAP_*; nested keys map
	// dots to underscores (weights.confidence -> CAREGAP_WEIGHTS_CONFIDENCE)
	viper.SetEnvPrefix("CAREGAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the configuration sources: built-in defaults, then the
// config file and CAREGAP_* environment via viper. Command flags override
// the result in each RunE, completing the flags > env > file > defaults
// hierarchy.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("min_trust") {
		cfg.MinTrust = viper.GetFloat64("min_trust")
	}
	if viper.IsSet("low_evidence_threshold") {
		cfg.LowEvidenceThreshold = viper.GetFloat64("low_evidence_threshold")
	}
	if viper.IsSet("similarity_threshold") {
		cfg.SimilarityThreshold = viper.GetFloat64("similarity_threshold")
	}
	if viper.IsSet("concurrency") {
		cfg.Concurrency = viper.GetInt("concurrency")
	}
	if viper.IsSet("ontology_path") {
		cfg.OntologyPath = viper.GetString("ontology_path")
	}
	if viper.IsSet("plausibility_path") {
		cfg.PlausibilityPath = viper.GetString("plausibility_path")
	}

	if viper.IsSet("weights.confidence") {
		cfg.Weights.Confidence = viper.GetFloat64("weights.confidence")
	}
	if viper.IsSet("weights.evidence_quality") {
		cfg.Weights.EvidenceQuality = viper.GetFloat64("weights.evidence_quality")
	}
	if viper.IsSet("weights.dependency_consistency") {
		cfg.Weights.DependencyConsistency = viper.GetFloat64("weights.dependency_consistency")
	}
	if viper.IsSet("weights.availability") {
		cfg.Weights.Availability = viper.GetFloat64("weights.availability")
	}
	if viper.IsSet("weights.flag_penalty") {
		cfg.Weights.FlagPenalty = viper.GetFloat64("weights.flag_penalty")
	}

	if viper.IsSet("severity_thresholds.critical") {
		cfg.Severity.Critical = viper.GetInt("severity_thresholds.critical")
	}
	if viper.IsSet("severity_thresholds.severe") {
		cfg.Severity.Severe = viper.GetInt("severity_thresholds.severe")
	}
	if viper.IsSet("severity_thresholds.moderate") {
		cfg.Severity.Moderate = viper.GetInt("severity_thresholds.moderate")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}

	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout_seconds") {
		cfg.LLM.TimeoutSeconds = viper.GetInt("llm.timeout_seconds")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.requests_per_second") {
		cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	}

	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
	cfg.Output.Verbose = verbose

	return cfg
}

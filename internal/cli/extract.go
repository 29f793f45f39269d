package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/caregap/internal/cache"
	"github.com/ppiankov/caregap/internal/ingest"
	"github.com/ppiankov/caregap/internal/llm"
)

var (
	extractOut      string
	extractTimeout  time.Duration
	llmProvider     string
	llmModel        string
	llmBaseURL      string
	llmRPS          float64
	noCache         bool
	extractCacheDir string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <facilities.csv>",
	Short: "Extract raw capability claims from facility descriptions",
	Long: `Extract reads facility metadata from a CSV export and produces a batch
file of raw capability claims via an OpenAI-compatible extraction model.

Extraction is a collaborator, not part of the scoring core: the output
batch file is exactly what 'caregap analyze' consumes, and any other
extractor producing the same format can replace this command.

Responses are cached on disk keyed by facility text, so re-runs only pay
for facilities whose descriptions changed.

Example:
  caregap extract facilities.csv --out batch.json
  caregap extract facilities.csv --provider groq --base-url https://api.groq.com/openai/v1 --model llama-3.3-70b-versatile`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOut, "out", "batch.json", "output batch file path")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 30*time.Minute, "overall extraction timeout")
	extractCmd.Flags().StringVar(&llmProvider, "provider", "openai", "extraction provider (openai, groq, ollama)")
	extractCmd.Flags().StringVar(&llmModel, "model", "", "extraction model name")
	extractCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "OpenAI-compatible endpoint base URL")
	extractCmd.Flags().Float64Var(&llmRPS, "rps", 2, "max extraction requests per second")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction response cache")
	extractCmd.Flags().StringVar(&extractCacheDir, "cache-dir", ".caregap-cache", "extraction cache directory")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	facilities, err := ingest.LoadFacilitiesCSV(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if cmd.Flags().Changed("provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if cmd.Flags().Changed("base-url") {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if cmd.Flags().Changed("rps") {
		cfg.LLM.RequestsPerSecond = llmRPS
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.Cache.Dir = extractCacheDir
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.LLM.APIKey = apiKeyFromEnv(cfg.LLM.Provider)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewLayeredCache(time.Hour, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	extractor := llm.NewExtractor(provider, responseCache, cfg.LLM.RequestsPerSecond, cfg.LLM.Model)

	if verbose {
		fmt.Fprintf(os.Stderr, "Facilities: %d\n", len(facilities))
		fmt.Fprintf(os.Stderr, "Provider: %s\n\n", provider.Name())
	}

	batches, failures := extractor.ExtractAll(ctx, facilities)

	if err := ingest.WriteBatches(batches, extractOut); err != nil {
		return err
	}

	fmt.Printf("Extracted %d facilities to %s\n", len(batches), extractOut)
	if len(failures) > 0 {
		fmt.Printf("Failed: %d\n", len(failures))
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", failure.FacilityID, failure.Error)
		}
	}

	return nil
}

// apiKeyFromEnv picks up the conventional key variable for each provider
func apiKeyFromEnv(provider string) string {
	switch provider {
	case "groq":
		if key := os.Getenv("GROQ_API_KEY"); key != "" {
			return key
		}
	case "ollama":
		return "ollama" // Ollama ignores the key but the client requires one
	}
	return os.Getenv("OPENAI_API_KEY")
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/caregap/internal/ingest"
	"github.com/ppiankov/caregap/internal/ontology"
	"github.com/ppiankov/caregap/internal/pipeline"
	"github.com/ppiankov/caregap/internal/validate"
)

var (
	outJSON          string
	outMD            string
	minTrust         float64
	analyzeTimeout   time.Duration
	concurrency      int
	ontologyPath     string
	plausibilityPath string
	similarity       float64
	noFooter         bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <batch.json>",
	Short: "Validate, score, and aggregate pre-extracted capability claims",
	Long: `Analyze runs the full pipeline over a batch file of facilities and
their raw extracted claims:
- Resolve capability phrases against the canonical ontology
- Flag missing dependencies, implausible claims, and contradictions
- Compute an explainable trust score per claim
- Roll up critical-capability coverage per region and classify severity

Claims are never dropped: quality problems become flags, and a facility
that fails validation is reported alongside the others, not fatal.

Example:
  caregap analyze batch.json
  caregap analyze batch.json --min-trust 0.6 --json report.json --md report.md
  caregap analyze batch.json --ontology ontology.yaml --plausibility types.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	analyzeCmd.Flags().Float64Var(&minTrust, "min-trust", 0.7, "minimum trust for a claim to count as regional coverage")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of parallel facility workers (0 = NumCPU)")
	analyzeCmd.Flags().Float64Var(&similarity, "similarity", 0, "fuzzy synonym match threshold in (0,1]; 0 disables")

	// Ontology flags
	analyzeCmd.Flags().StringVar(&ontologyPath, "ontology", "", "ontology YAML (default: built-in taxonomy)")
	analyzeCmd.Flags().StringVar(&plausibilityPath, "plausibility", "", "facility-type plausibility YAML (default: built-in table)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := loadConfig()
	if cmd.Flags().Changed("min-trust") {
		cfg.MinTrust = minTrust
	}
	if cmd.Flags().Changed("similarity") {
		cfg.SimilarityThreshold = similarity
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	if cmd.Flags().Changed("ontology") {
		cfg.OntologyPath = ontologyPath
	}
	if cmd.Flags().Changed("plausibility") {
		cfg.PlausibilityPath = plausibilityPath
	}
	if cmd.Flags().Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}

	ont, table, err := loadTables(cfg.OntologyPath, cfg.PlausibilityPath)
	if err != nil {
		return err
	}

	batches, err := ingest.LoadBatches(args[0])
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Facilities: %d\n", len(batches))
		fmt.Fprintf(os.Stderr, "Critical capabilities tracked: %d\n", len(ont.Critical()))
		fmt.Fprintf(os.Stderr, "Min trust: %.2f\n\n", cfg.MinTrust)
	}

	p, err := pipeline.New(cfg, ont, table)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, batches)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

// loadTables resolves the ontology and plausibility table, falling back to
// the built-in defaults when no file is given
func loadTables(ontPath, plausPath string) (*ontology.Ontology, validate.PlausibilityTable, error) {
	ont := ontology.Default()
	if ontPath != "" {
		loaded, err := ontology.LoadFile(ontPath)
		if err != nil {
			return nil, nil, err
		}
		ont = loaded
	}

	table := validate.DefaultPlausibility()
	if plausPath != "" {
		loaded, err := validate.LoadPlausibility(plausPath)
		if err != nil {
			return nil, nil, err
		}
		table = loaded
	}

	return ont, table, nil
}

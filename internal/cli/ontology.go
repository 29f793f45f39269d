package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/caregap/internal/ontology"
)

var (
	ontListPath    string
	ontResolvePath string
	ontResolveSim  float64
)

// ontologyCmd groups the taxonomy inspection commands
var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Inspect the capability taxonomy",
	Long: `Inspect the canonical capability taxonomy used for claim resolution:
list capabilities and their dependencies, lint a custom ontology file,
or check how a free-text phrase resolves.`,
}

// ontologyListCmd represents the ontology list command
var ontologyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all capabilities with criticality and dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, err := loadOntology(ontListPath)
		if err != nil {
			return err
		}

		for _, code := range ont.Codes() {
			label, _ := ont.Label(code)
			critical, _ := ont.IsCritical(code)
			deps, _ := ont.DependenciesOf(code)

			marker := " "
			if critical {
				marker = "*"
			}
			fmt.Printf("%s %-32s %s", marker, code, label)
			if len(deps) > 0 {
				depStrs := make([]string, len(deps))
				for i, d := range deps {
					depStrs[i] = string(d)
				}
				fmt.Printf("  (requires: %s)", strings.Join(depStrs, ", "))
			}
			fmt.Println()
		}

		fmt.Printf("\n%d capabilities, %d critical (*), %d synonyms\n",
			len(ont.Codes()), len(ont.Critical()), len(ont.Synonyms()))
		return nil
	},
}

// ontologyLintCmd represents the ontology lint command
var ontologyLintCmd = &cobra.Command{
	Use:   "lint <ontology.yaml>",
	Short: "Validate a custom ontology file",
	Long: `Lint loads an ontology file and reports the first consistency problem:
dependencies on unknown codes, synonyms mapping to unknown codes, and
duplicate synonyms pointing at different capabilities.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, err := ontology.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("OK: %d capabilities, %d critical, %d synonyms\n",
			len(ont.Codes()), len(ont.Critical()), len(ont.Synonyms()))
		return nil
	},
}

// ontologyResolveCmd represents the ontology resolve command
var ontologyResolveCmd = &cobra.Command{
	Use:   "resolve <phrase>...",
	Short: "Show how free-text phrases resolve against the taxonomy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ont, err := loadOntology(ontResolvePath)
		if err != nil {
			return err
		}
		if ontResolveSim > 0 {
			ont = ont.WithSimilarity(ontResolveSim)
		}

		for _, phrase := range args {
			res := ont.Resolve(phrase)
			if res.Resolved {
				label, _ := ont.Label(res.Code)
				fmt.Printf("%-30s -> %s (%s)\n", phrase, res.Code, label)
			} else {
				fmt.Printf("%-30s -> unresolved\n", phrase)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ontologyCmd)
	ontologyCmd.AddCommand(ontologyListCmd)
	ontologyCmd.AddCommand(ontologyLintCmd)
	ontologyCmd.AddCommand(ontologyResolveCmd)

	ontologyListCmd.Flags().StringVar(&ontListPath, "ontology", "", "ontology YAML (default: built-in taxonomy)")
	ontologyResolveCmd.Flags().StringVar(&ontResolvePath, "ontology", "", "ontology YAML (default: built-in taxonomy)")
	ontologyResolveCmd.Flags().Float64Var(&ontResolveSim, "similarity", 0, "fuzzy synonym match threshold in (0,1]; 0 disables")
}

func loadOntology(path string) (*ontology.Ontology, error) {
	if path == "" {
		return ontology.Default(), nil
	}
	return ontology.LoadFile(path)
}

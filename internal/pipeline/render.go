package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/caregap/internal/model"
)

// Renderer writes batch reports as JSON and Markdown. Rendering lives at the
// application boundary; the core only ever hands over plain records.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.BatchReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable coverage summary
func (r *Renderer) RenderMarkdown(report *model.BatchReport, path string) error {
	var b strings.Builder

	b.WriteString("# Regional Capability Coverage Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Facilities: %d (%d failed)\n", len(report.Profiles), len(report.Failures))
	fmt.Fprintf(&b, "- Minimum trust for coverage: %.2f\n\n", report.MinTrust)

	b.WriteString("## Regions\n\n")
	b.WriteString("| Region | Facilities | Severity | Coverage | Missing critical capabilities |\n")
	b.WriteString("|--------|-----------:|----------|---------:|-------------------------------|\n")
	for _, region := range report.Regions {
		missing := make([]string, len(region.CriticalMissing))
		for i, code := range region.CriticalMissing {
			missing[i] = string(code)
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %.1f%% | %s |\n",
			region.Region, region.FacilitiesCount, region.Severity,
			region.CoveragePercent, strings.Join(missing, ", "))
	}
	b.WriteString("\n")

	if len(report.Failures) > 0 {
		b.WriteString("## Failed facilities\n\n")
		for _, failure := range report.Failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", failure.FacilityID, failure.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Facilities\n\n")
	for _, profile := range report.Profiles {
		fmt.Fprintf(&b, "### %s (%s, %s)\n\n", profile.Facility.Name, profile.Facility.Type, profile.Facility.Region)
		fmt.Fprintf(&b, "Mean trust %.2f: %d high / %d medium / %d low\n\n",
			profile.Stats.MeanTrust, profile.Stats.HighTrust, profile.Stats.MediumTrust, profile.Stats.LowTrust)

		claims := make([]model.ScoredClaim, len(profile.Claims))
		copy(claims, profile.Claims)
		sort.Slice(claims, func(i, j int) bool { return claims[i].Trust > claims[j].Trust })

		for _, claim := range claims {
			name := claim.Raw.Capability
			if claim.Capability.Resolved {
				name = string(claim.Capability.Code)
			}
			fmt.Fprintf(&b, "- **%s**: trust %.2f (%s), availability %s",
				name, claim.Trust, claim.Tier, claim.Raw.Availability)
			if len(claim.Flags) > 0 {
				flags := make([]string, len(claim.Flags))
				for i, f := range claim.Flags {
					flags[i] = string(f)
				}
				fmt.Fprintf(&b, ", flags: %s", strings.Join(flags, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Trust scores describe how well each claim is supported, not whether it is true.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short overview to stdout
func (r *Renderer) RenderSummary(report *model.BatchReport) {
	fmt.Printf("Facilities processed: %d (%d failed)\n", len(report.Profiles), len(report.Failures))
	fmt.Printf("Regions analyzed:     %d (%d deserts)\n", len(report.Regions), report.DesertCount())
	for _, region := range report.Regions {
		fmt.Printf("  %-24s %-8s coverage %5.1f%%  missing %d\n",
			region.Region, region.Severity, region.CoveragePercent, len(region.CriticalMissing))
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webguard/src/service/catalog"
)

// patternSummary is the YAML export shape for one rule
type patternSummary struct {
	ID          string `yaml:"id"`
	Language    string `yaml:"language"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
	IssueType   string `yaml:"issue_type"`
	Description string `yaml:"description"`
}

func (h *Handler) patternsCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the detection rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New()

			if asYAML {
				var out []patternSummary
				for _, p := range cat.All() {
					out = append(out, patternSummary{
						ID:          p.ID,
						Language:    string(p.Language),
						Category:    string(p.Category),
						Severity:    string(p.Severity),
						IssueType:   string(p.IssueType),
						Description: p.Description,
					})
				}
				data, err := yaml.Marshal(out)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			}

			fmt.Printf("Pattern catalog v%s\n\n", catalog.Version)
			for _, p := range cat.All() {
				fmt.Printf("  %-22s %-8s %-8s %s\n", p.ID, p.Language, p.Severity, p.Description)
			}
			fmt.Println("\nCross-file rules:")
			for _, r := range cat.CrossFileRules() {
				fmt.Printf("  %-22s %s -> %s  %s\n", r.ID, r.Referencing, r.Referenced, r.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Export the catalog as YAML")
	return cmd
}

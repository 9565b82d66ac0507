package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"webguard/src/controller"
	"webguard/src/service/source"
)

func (h *Handler) healCmd() *cobra.Command {
	var (
		dir           string
		outDir        string
		inPlace       bool
		maxIterations int
		outputFile    string
		format        string
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "heal",
		Short: "Analyze and automatically fix web artifacts",
		Long:  "Runs the full analyze, predict, fix, and re-verify cycle and writes the healed files out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !inPlace && outDir == "" {
				return fmt.Errorf("either --out or --in-place is required")
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			report, err := h.runEngine(ctx, dir, controller.Options{
				Heal:          true,
				MaxIterations: maxIterations,
			})
			if err != nil {
				return err
			}

			target := outDir
			if inPlace {
				target = dir
			}
			loader := source.NewLoader(h.cfg.Exclusions)
			if err := loader.WriteFiles(target, report.FixedFiles); err != nil {
				return fmt.Errorf("writing healed files: %w", err)
			}
			fmt.Printf("Healed files written to %s\n", target)

			return h.renderReport(report, outputFile, format)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of web artifacts to heal (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to write healed files to")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Overwrite the input files")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Cap on fix/re-analyze iterations (0 = configured default)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output directory for the report")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format (json, markdown, text)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Healing timeout")

	cmd.MarkFlagRequired("dir")

	return cmd
}

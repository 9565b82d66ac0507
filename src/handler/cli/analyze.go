package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webguard/src/controller"
	"webguard/src/model"
	"webguard/src/service/source"
	"webguard/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		dir        string
		outputFile string
		format     string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze web artifacts for defects and risks",
		Long:  "Scans a directory of markup, stylesheet, and script files, reports detected issues and predictive alerts without modifying anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			report, err := h.runEngine(ctx, dir, controller.Options{Heal: false})
			if err != nil {
				return err
			}
			return h.renderReport(report, outputFile, format)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of web artifacts to analyze (required)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, text)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	cmd.MarkFlagRequired("dir")

	return cmd
}

// runEngine loads the file set and executes one run
func (h *Handler) runEngine(ctx context.Context, dir string, opts controller.Options) (*model.Report, error) {
	util.Info("Analyzing directory: %s", dir)

	loader := source.NewLoader(h.cfg.Exclusions)
	files, err := loader.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading files: %w", err)
	}

	runCtrl := controller.NewRunController(h.cfg)
	defer runCtrl.Close()

	return runCtrl.Run(ctx, files, opts), nil
}

// renderReport writes the report to files or stdout and prints a colored
// summary to stderr
func (h *Handler) renderReport(report *model.Report, outputFile, format string) error {
	reportCtrl := controller.NewReportController(h.cfg)

	if outputFile != "" {
		h.cfg.Output.OutputDir = outputFile
		if format != "" {
			h.cfg.Output.Formats = []string{format}
		}
		paths, err := reportCtrl.GenerateReports(report)
		if err != nil {
			return fmt.Errorf("generating reports: %w", err)
		}
		for _, path := range paths {
			fmt.Printf("Report written to %s\n", path)
		}
	} else {
		outputFormat := format
		if outputFormat == "" {
			outputFormat = "json"
		}
		output, err := reportCtrl.GenerateToString(report, outputFormat)
		if err != nil {
			// Fallback to raw JSON
			data, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(data))
		} else {
			fmt.Println(output)
		}
	}

	h.printSummary(report)
	return nil
}

func (h *Handler) printSummary(report *model.Report) {
	bold := color.New(color.Bold)
	fmt.Fprintln(os.Stderr)
	bold.Fprintln(os.Stderr, "Run complete:")
	fmt.Fprintf(os.Stderr, "  Issues detected:  %d\n", report.Summary.TotalIssues)
	if report.Iterations > 0 {
		fmt.Fprintf(os.Stderr, "  Issues remaining: %d (after %d healing iteration(s))\n",
			report.Summary.RemainingCount, report.Iterations)
		fmt.Fprintf(os.Stderr, "  Success rate:     %.0f%%\n", report.SuccessRate*100)
	}

	criticals := report.Summary.BySeverity[model.SeverityCritical]
	if criticals > 0 {
		color.New(color.FgRed).Fprintf(os.Stderr, "  Critical issues:  %d\n", criticals)
	}
	for _, alert := range report.Alerts {
		c := color.New(color.FgYellow)
		if alert.RiskLevel == model.RiskHigh {
			c = color.New(color.FgRed)
		}
		c.Fprintf(os.Stderr, "  [%s risk] %s (%.0f%%, %s)\n",
			alert.RiskLevel, alert.PredictedError, alert.Probability*100, alert.Timeline)
	}
}

package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/service/report"
	"webguard/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateReports generates reports in all configured formats
func (c *ReportController) GenerateReports(r *model.Report) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	generator := report.NewGenerator(c.cfg.Output)
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		output, err := generator.Generate(r, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.getOutputPath(format)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			return nil, fmt.Errorf("writing %s report: %w", format, err)
		}
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString renders a report in one format without touching disk
func (c *ReportController) GenerateToString(r *model.Report, format string) (string, error) {
	return report.NewGenerator(c.cfg.Output).Generate(r, format)
}

func (c *ReportController) getOutputPath(format string) string {
	ext := format
	if format == "markdown" {
		ext = "md"
	}
	if format == "text" {
		ext = "txt"
	}
	name := fmt.Sprintf("webguard-report-%s.%s", time.Now().Format("20060102-150405"), ext)
	return filepath.Join(c.cfg.Output.OutputDir, name)
}

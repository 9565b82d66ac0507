package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/util"
)

// Generator generates reports in various formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(report *model.Report, format string) (string, error) {
	util.Debug("Generating report in %s format (%d issues)", format, len(report.Issues))
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "text":
		return g.generateText(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(report *model.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) generateMarkdown(report *model.Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Web Artifact Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("**Duration:** %v\n\n", report.Duration))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Issues detected:** %d\n", report.Summary.TotalIssues))
	sb.WriteString(fmt.Sprintf("- **Issues remaining after healing:** %d\n", report.Summary.RemainingCount))
	sb.WriteString(fmt.Sprintf("- **Fix success rate:** %.0f%%\n", report.SuccessRate*100))
	sb.WriteString(fmt.Sprintf("- **Predictive alerts:** %d\n\n", len(report.Alerts)))

	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityMajor, model.SeverityMinor, model.SeverityWarning} {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, report.Summary.BySeverity[sev]))
	}
	sb.WriteString("\n")

	if len(report.Summary.HotspotFiles) > 0 {
		sb.WriteString("### Hotspot Files\n\n")
		sb.WriteString("| File | Issue Count |\n")
		sb.WriteString("|------|-------------|\n")
		for _, hs := range report.Summary.HotspotFiles {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", hs.FilePath, hs.IssueCount))
		}
		sb.WriteString("\n")
	}

	if len(report.Issues) > 0 {
		sb.WriteString("## Issues\n\n")
		for _, issue := range report.Issues {
			sb.WriteString(fmt.Sprintf("- %s **%s** `%s:%d:%d` — %s\n",
				severityMarker(issue.Severity), issue.IssueType,
				issue.FilePath, issue.Line, issue.Column, issue.Message))
			if g.cfg.IncludeSuggestions && issue.FixSuggestion != "" {
				sb.WriteString(fmt.Sprintf("  - Suggestion: `%s`\n", issue.FixSuggestion))
			}
		}
		sb.WriteString("\n")
	}

	if len(report.Alerts) > 0 {
		sb.WriteString("## Predictive Alerts\n\n")
		for _, alert := range report.Alerts {
			sb.WriteString(fmt.Sprintf("### %s (%.0f%% probability, %s risk)\n\n",
				alert.PredictedError, alert.Probability*100, alert.RiskLevel))
			sb.WriteString(fmt.Sprintf("- **Timeline:** %s\n", alert.Timeline))
			sb.WriteString(fmt.Sprintf("- **Matched conditions:** %s\n", strings.Join(alert.MatchedConditions, ", ")))
			sb.WriteString("- **Prevention:**\n")
			for _, action := range alert.PreventionActions {
				sb.WriteString(fmt.Sprintf("  - %s\n", action))
			}
			sb.WriteString("\n")
		}
	}

	if g.cfg.IncludeFixLog && len(report.FixLog) > 0 {
		sb.WriteString("## Fix Log\n\n")
		for _, entry := range report.FixLog {
			sb.WriteString(fmt.Sprintf("- %s\n", entry))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (g *Generator) generateText(report *model.Report) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Issues detected:  %d\n", report.Summary.TotalIssues))
	sb.WriteString(fmt.Sprintf("Issues remaining: %d\n", report.Summary.RemainingCount))
	sb.WriteString(fmt.Sprintf("Success rate:     %.0f%%\n", report.SuccessRate*100))
	sb.WriteString(fmt.Sprintf("Alerts:           %d\n", len(report.Alerts)))
	for _, issue := range report.RemainingIssues {
		sb.WriteString(fmt.Sprintf("  %s:%d:%d [%s] %s\n",
			issue.FilePath, issue.Line, issue.Column, issue.Severity, issue.Message))
	}
	return sb.String(), nil
}

func severityMarker(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🔴"
	case model.SeverityMajor:
		return "🟠"
	case model.SeverityMinor:
		return "🟡"
	default:
		return "⚪"
	}
}

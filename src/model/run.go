package model

import (
	"fmt"
	"time"
)

// RunState tracks the orchestrator's progress through a run. There is no
// failed state: every component degrades to partial results, so a run
// always reaches Completed.
type RunState string

const (
	RunPending    RunState = "pending"
	RunAnalyzing  RunState = "analyzing"
	RunPredicting RunState = "predicting"
	RunFixing     RunState = "fixing"
	RunVerifying  RunState = "verifying"
	RunCompleted  RunState = "completed"
)

// FixEntry is one line of the healing application log
type FixEntry struct {
	IssueType IssueType `json:"issue_type"`
	FilePath  string    `json:"file_path"`
	Line      int       `json:"line"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// String renders the entry as a human-readable log line
func (e FixEntry) String() string {
	if e.Success {
		return fmt.Sprintf("Fixed %s in %s:%d", e.IssueType, e.FilePath, e.Line)
	}
	return fmt.Sprintf("Failed to fix %s in %s:%d: %s", e.IssueType, e.FilePath, e.Line, e.Error)
}

// AnalysisRun is the persisted append-only summary of one run.
// Records are immutable once written.
type AnalysisRun struct {
	ID              string        `json:"id"`
	Timestamp       time.Time     `json:"timestamp"`
	FileCount       int           `json:"file_count"`
	IssuesDetected  int           `json:"issues_detected"`
	IssuesFixed     int           `json:"issues_fixed"`
	PredictionsMade int           `json:"predictions_made"`
	Duration        time.Duration `json:"duration"`
	SuccessRate     float64       `json:"success_rate"`
}

// Report is the complete result of one analyze → predict → heal → verify
// cycle. A run always returns a Report, even for empty or broken input.
type Report struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Issues          []Issue           `json:"issues"`
	RemainingIssues []Issue           `json:"remaining_issues"`
	Alerts          []PredictiveAlert `json:"alerts"`
	FixLog          []FixEntry        `json:"fix_log"`
	FixedFiles      map[string]string `json:"fixed_files,omitempty"`
	SuccessRate     float64           `json:"success_rate"`
	Duration        time.Duration     `json:"duration"`
	Iterations      int               `json:"iterations"`
	Summary         ReportSummary     `json:"summary"`
}

// ReportSummary contains aggregated statistics for rendering
type ReportSummary struct {
	TotalIssues    int               `json:"total_issues"`
	RemainingCount int               `json:"remaining_count"`
	BySeverity     map[Severity]int  `json:"by_severity"`
	ByCategory     map[IssueType]int `json:"by_issue_type"`
	ByRiskLevel    map[RiskLevel]int `json:"by_risk_level"`
	HotspotFiles   []FileHotspot     `json:"hotspot_files"`
}

// FileHotspot represents a file with many issues
type FileHotspot struct {
	FilePath   string `json:"file_path"`
	IssueCount int    `json:"issue_count"`
}

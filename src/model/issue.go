package model

import (
	"fmt"
	"hash/fnv"
)

// Severity represents the severity level of a detected issue
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityWarning  Severity = "warning"
)

// severityRank orders severities from least to most severe
var severityRank = map[Severity]int{
	SeverityWarning:  0,
	SeverityMinor:    1,
	SeverityMajor:    2,
	SeverityCritical: 3,
}

// Rank returns the numeric rank of a severity (higher is more severe)
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is at least as severe as min
func (s Severity) AtLeast(min Severity) bool {
	return severityRank[s] >= severityRank[min]
}

// IssueType identifies one kind of detectable defect. The set is closed:
// the healer dispatches on these values, so an unhandled type is visible
// at the registry rather than a silent runtime no-op.
type IssueType string

const (
	// Markup
	IssueMissingDoctype      IssueType = "missing_doctype"
	IssueMissingCharset      IssueType = "missing_charset"
	IssueMissingViewport     IssueType = "missing_viewport"
	IssueMissingAlt          IssueType = "missing_alt"
	IssueDuplicateID         IssueType = "duplicate_id"
	IssueInlineEventHandler  IssueType = "inline_event_handler"
	IssueTargetBlankNoOpener IssueType = "target_blank_no_noopener"
	IssueDeprecatedTag       IssueType = "deprecated_tag"

	// Style
	IssueFixedWidth          IssueType = "fixed_width"
	IssueImportantOveruse    IssueType = "important_overuse"
	IssueHoverWithoutFocus   IssueType = "hover_without_focus"
	IssueMissingFocusVisible IssueType = "missing_focus_visible"

	// Script
	IssueSyntaxError     IssueType = "syntax_error"
	IssueEvalUsage       IssueType = "eval_usage"
	IssueDocumentWrite   IssueType = "document_write"
	IssueConsoleLog      IssueType = "console_log"
	IssueVarUsage        IssueType = "var_usage"
	IssueInnerHTMLAssign IssueType = "innerhtml_assignment"
	IssueLooseEquality   IssueType = "loose_equality"
	IssueSyncXHR         IssueType = "sync_xhr"

	// Cross-file
	IssueMissingCSSLink  IssueType = "missing_css_link"
	IssueMissingJSScript IssueType = "missing_js_script"
)

// Issue represents one detected defect occurrence in a specific file.
// Issues are never mutated after creation: healing produces new Issues on
// re-analysis rather than edits to old ones.
type Issue struct {
	ID            string    `json:"id"`
	FilePath      string    `json:"file_path"`
	Line          int       `json:"line"`
	Column        int       `json:"column"`
	IssueType     IssueType `json:"issue_type"`
	Severity      Severity  `json:"severity"`
	Message       string    `json:"message"`
	FixSuggestion string    `json:"fix_suggestion,omitempty"`
	PatternID     string    `json:"pattern_id,omitempty"` // empty for structural issues
}

// IssueID computes the deterministic id for an issue occurrence.
// Re-running analysis on unchanged input yields identical ids.
func IssueID(filePath, patternID string, issueType IssueType, line, column int) string {
	key := patternID
	if key == "" {
		key = string(issueType)
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d|%d", filePath, key, line, column)
	return fmt.Sprintf("%016x", h.Sum64())
}

package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language classifies the content of an analyzed file
type Language string

const (
	LanguageMarkup    Language = "markup"
	LanguageStyle     Language = "style"
	LanguageScript    Language = "script"
	LanguageCrossFile Language = "cross-file"
	LanguageUnknown   Language = "unknown"
)

// LanguageForPath infers the content language from a file extension
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return LanguageMarkup
	case ".css":
		return LanguageStyle
	case ".js", ".mjs":
		return LanguageScript
	default:
		return LanguageUnknown
	}
}

// Category represents the defect category a pattern belongs to
type Category string

const (
	CategoryAccessibility   Category = "accessibility"
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryCompatibility   Category = "compatibility"
	CategoryResponsiveness  Category = "responsiveness"
	CategoryMaintainability Category = "maintainability"
	CategoryStructure       Category = "structure"
)

// PatternMatch is one location where a pattern matched file content.
// Line and Column are 1-based.
type PatternMatch struct {
	Line    int
	Column  int
	Text    string
	Message string // optional override of the pattern description
}

// Pattern is an immutable detection rule for one language/category.
// Exactly one of Matcher or Check is set: Matcher covers rules expressible
// as a regular expression, Check covers structural predicates such as
// absence checks. Patterns are created at catalog load time, never mutated,
// and shared read-only across a run.
type Pattern struct {
	ID          string
	Language    Language
	Category    Category
	Severity    Severity
	IssueType   IssueType
	Description string
	FixTemplate string
	Matcher     *regexp.Regexp
	Check       func(content string) []PatternMatch
}

// CrossFileRule describes a dependency check between artifact kinds:
// every file of the referenced language must be referenced (by base name)
// from every file of the referencing language in the same file set.
type CrossFileRule struct {
	ID          string
	Referencing Language
	Referenced  Language
	IssueType   IssueType
	Severity    Severity
	Description string
	// Snippet renders the exact reference to insert for a missing artifact
	Snippet func(relPath string) string
}

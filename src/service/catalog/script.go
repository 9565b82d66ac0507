package catalog

import (
	"regexp"

	"webguard/src/model"
)

func scriptPatterns() []model.Pattern {
	return []model.Pattern{
		{
			ID:          "js-eval",
			Language:    model.LanguageScript,
			Category:    model.CategorySecurity,
			Severity:    model.SeverityCritical,
			IssueType:   model.IssueEvalUsage,
			Description: "eval() executes arbitrary strings as code",
			Matcher:     regexp.MustCompile(`\beval\s*\(`),
		},
		{
			ID:          "js-document-write",
			Language:    model.LanguageScript,
			Category:    model.CategoryCompatibility,
			Severity:    model.SeverityMajor,
			IssueType:   model.IssueDocumentWrite,
			Description: "document.write blocks parsing and fails on async documents",
			Matcher:     regexp.MustCompile(`document\.write(ln)?\s*\(`),
		},
		{
			ID:          "js-innerhtml",
			Language:    model.LanguageScript,
			Category:    model.CategorySecurity,
			Severity:    model.SeverityMajor,
			IssueType:   model.IssueInnerHTMLAssign,
			Description: "innerHTML assignment with dynamic content risks markup injection",
			Matcher:     regexp.MustCompile(`\.innerHTML\s*=[^=]`),
		},
		{
			ID:          "js-console-log",
			Language:    model.LanguageScript,
			Category:    model.CategoryMaintainability,
			Severity:    model.SeverityWarning,
			IssueType:   model.IssueConsoleLog,
			Description: "console.log left in production code",
			Matcher:     regexp.MustCompile(`console\.log\s*\(`),
		},
		{
			ID:          "js-var",
			Language:    model.LanguageScript,
			Category:    model.CategoryMaintainability,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueVarUsage,
			Description: "var is function-scoped and hoisted; prefer let or const",
			FixTemplate: "let",
			Matcher:     regexp.MustCompile(`(?m)^\s*var\s+`),
		},
		{
			ID:          "js-loose-equality",
			Language:    model.LanguageScript,
			Category:    model.CategoryMaintainability,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueLooseEquality,
			Description: "Loose equality coerces types; prefer === and !==",
			FixTemplate: "===",
			Matcher:     regexp.MustCompile(`[^=!<>]==[^=]`),
		},
		{
			ID:          "js-sync-xhr",
			Language:    model.LanguageScript,
			Category:    model.CategoryPerformance,
			Severity:    model.SeverityMajor,
			IssueType:   model.IssueSyncXHR,
			Description: "Synchronous XMLHttpRequest blocks the main thread",
			Matcher:     regexp.MustCompile(`\.open\s*\(\s*['"][A-Z]+['"]\s*,[^,)]+,\s*false\s*\)`),
		},
	}
}

package catalog

import (
	"regexp"
	"strings"

	"webguard/src/model"
	"webguard/src/util"
)

var (
	doctypeRe     = regexp.MustCompile(`(?i)<!DOCTYPE\s+html`)
	charsetRe     = regexp.MustCompile(`(?i)<meta[^>]+charset`)
	anchorTagRe   = regexp.MustCompile(`(?i)<a\b[^>]*>`)
	targetBlankRe = regexp.MustCompile(`(?i)target\s*=\s*["']_blank["']`)
	noopenerRe    = regexp.MustCompile(`(?i)rel\s*=\s*["'][^"']*noopener`)
)

func markupPatterns() []model.Pattern {
	return []model.Pattern{
		{
			ID:          "html-doctype",
			Language:    model.LanguageMarkup,
			Category:    model.CategoryCompatibility,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueMissingDoctype,
			Description: "Document has no doctype declaration; browsers fall back to quirks mode",
			FixTemplate: "<!DOCTYPE html>",
			Check:       absenceCheck(doctypeRe),
		},
		{
			ID:          "html-charset",
			Language:    model.LanguageMarkup,
			Category:    model.CategoryCompatibility,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueMissingCharset,
			Description: "Document declares no character encoding",
			FixTemplate: `<meta charset="UTF-8">`,
			Check:       absenceCheck(charsetRe),
		},
		{
			ID:          "html-inline-handler",
			Language:    model.LanguageMarkup,
			Category:    model.CategoryMaintainability,
			Severity:    model.SeverityWarning,
			IssueType:   model.IssueInlineEventHandler,
			Description: "Inline event handler attribute; prefer addEventListener",
			Matcher:     regexp.MustCompile(`(?i)\son(click|dblclick|load|unload|mouseover|mouseout|submit|change|input|keyup|keydown|focus|blur)\s*=`),
		},
		{
			ID:          "html-target-blank",
			Language:    model.LanguageMarkup,
			Category:    model.CategorySecurity,
			Severity:    model.SeverityMajor,
			IssueType:   model.IssueTargetBlankNoOpener,
			Description: `target="_blank" link without rel="noopener" exposes window.opener`,
			FixTemplate: `rel="noopener noreferrer"`,
			Check:       targetBlankCheck,
		},
		{
			ID:          "html-deprecated-tag",
			Language:    model.LanguageMarkup,
			Category:    model.CategoryCompatibility,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueDeprecatedTag,
			Description: "Deprecated HTML element",
			Matcher:     regexp.MustCompile(`(?i)<(center|font|marquee|blink|big|strike)\b`),
		},
	}
}

// absenceCheck builds a predicate that reports one match at line 1 when the
// given expression never occurs in the content
func absenceCheck(re *regexp.Regexp) func(string) []model.PatternMatch {
	return func(content string) []model.PatternMatch {
		if strings.TrimSpace(content) == "" || re.MatchString(content) {
			return nil
		}
		return []model.PatternMatch{{Line: 1, Column: 1}}
	}
}

// targetBlankCheck flags anchors that open a new browsing context without
// severing the opener reference
func targetBlankCheck(content string) []model.PatternMatch {
	var matches []model.PatternMatch
	for _, loc := range anchorTagRe.FindAllStringIndex(content, -1) {
		tag := content[loc[0]:loc[1]]
		if targetBlankRe.MatchString(tag) && !noopenerRe.MatchString(tag) {
			line, col := util.LineColAt(content, loc[0])
			matches = append(matches, model.PatternMatch{Line: line, Column: col, Text: tag})
		}
	}
	return matches
}

package catalog

import (
	"regexp"
	"strings"

	"webguard/src/model"
	"webguard/src/util"
)

var (
	hoverSelectorRe = regexp.MustCompile(`([^\s{},]+):hover`)
	focusRuleRe     = regexp.MustCompile(`:(focus|focus-visible)\b`)
	cssRuleRe       = regexp.MustCompile(`[^{}]+\{`)
)

func stylePatterns() []model.Pattern {
	return []model.Pattern{
		{
			ID:          "css-fixed-width",
			Language:    model.LanguageStyle,
			Category:    model.CategoryResponsiveness,
			Severity:    model.SeverityMinor,
			IssueType:   model.IssueFixedWidth,
			Description: "Fixed pixel width breaks small viewports; prefer max-width or relative units",
			FixTemplate: "max-width: {px}; width: 100%",
			Matcher:     regexp.MustCompile(`(?i)(?:^|[^-\w])width\s*:\s*\d+px`),
		},
		{
			ID:          "css-important",
			Language:    model.LanguageStyle,
			Category:    model.CategoryMaintainability,
			Severity:    model.SeverityWarning,
			IssueType:   model.IssueImportantOveruse,
			Description: "!important overrides the cascade and hides specificity problems",
			Matcher:     regexp.MustCompile(`!important`),
		},
		{
			ID:          "css-hover-only",
			Language:    model.LanguageStyle,
			Category:    model.CategoryAccessibility,
			Severity:    model.SeverityMajor,
			IssueType:   model.IssueHoverWithoutFocus,
			Description: "Selector styled for :hover with no :focus equivalent; keyboard users get no affordance",
			Check:       hoverWithoutFocusCheck,
		},
		{
			ID:          "css-focus-visible",
			Language:    model.LanguageStyle,
			Category:    model.CategoryAccessibility,
			Severity:    model.SeverityWarning,
			IssueType:   model.IssueMissingFocusVisible,
			Description: "Stylesheet defines rules but no focus styling at all",
			Check:       missingFocusVisibleCheck,
		},
	}
}

// hoverWithoutFocusCheck flags each :hover selector whose base selector has
// no :focus counterpart anywhere in the sheet
func hoverWithoutFocusCheck(content string) []model.PatternMatch {
	var matches []model.PatternMatch
	for _, loc := range hoverSelectorRe.FindAllStringSubmatchIndex(content, -1) {
		base := content[loc[2]:loc[3]]
		if strings.Contains(content, base+":focus") {
			continue
		}
		line, col := util.LineColAt(content, loc[0])
		matches = append(matches, model.PatternMatch{
			Line:    line,
			Column:  col,
			Text:    base + ":hover",
			Message: "Selector " + base + " is styled for :hover but has no :focus rule",
		})
	}
	return matches
}

// missingFocusVisibleCheck reports once, at line 1, when a non-empty sheet
// contains no focus styling whatsoever
func missingFocusVisibleCheck(content string) []model.PatternMatch {
	if !cssRuleRe.MatchString(content) || focusRuleRe.MatchString(content) {
		return nil
	}
	return []model.PatternMatch{{Line: 1, Column: 1}}
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webguard/src/model"
)

func TestCatalogOrderIsDeterministic(t *testing.T) {
	first := New()
	second := New()

	firstIDs := patternIDs(first.All())
	secondIDs := patternIDs(second.All())

	require.NotEmpty(t, firstIDs)
	assert.Equal(t, firstIDs, secondIDs)
}

func TestCatalogPatternsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range New().All() {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate pattern id %s", p.ID)
		seen[p.ID] = true

		assert.NotEmpty(t, p.Description, "pattern %s has no description", p.ID)
		assert.NotEqual(t, model.Severity(""), p.Severity, "pattern %s has no severity", p.ID)
		assert.NotEqual(t, model.IssueType(""), p.IssueType, "pattern %s has no issue type", p.ID)

		hasMatcher := p.Matcher != nil
		hasCheck := p.Check != nil
		assert.True(t, hasMatcher != hasCheck,
			"pattern %s must have exactly one of matcher and check", p.ID)
	}
}

func TestCatalogRulesForUnknownLanguage(t *testing.T) {
	assert.Empty(t, New().RulesFor(model.LanguageUnknown))
}

func TestCatalogRulesForMatchesPatternLanguage(t *testing.T) {
	c := New()
	for _, lang := range []model.Language{model.LanguageMarkup, model.LanguageStyle, model.LanguageScript} {
		rules := c.RulesFor(lang)
		require.NotEmpty(t, rules, "no rules for %s", lang)
		for _, p := range rules {
			assert.Equal(t, lang, p.Language, "pattern %s filed under wrong language", p.ID)
		}
	}
}

func TestCrossFileRuleSnippets(t *testing.T) {
	rules := New().CrossFileRules()
	require.Len(t, rules, 2)

	byID := map[string]model.CrossFileRule{}
	for _, r := range rules {
		assert.Equal(t, model.LanguageMarkup, r.Referencing)
		byID[r.ID] = r
	}

	css, ok := byID["xf-css-link"]
	require.True(t, ok)
	assert.Equal(t, model.IssueMissingCSSLink, css.IssueType)
	assert.Equal(t, `<link rel="stylesheet" href="main.css">`, css.Snippet("main.css"))

	js, ok := byID["xf-js-script"]
	require.True(t, ok)
	assert.Equal(t, model.IssueMissingJSScript, js.IssueType)
	assert.Equal(t, `<script src="app.js"></script>`, js.Snippet("app.js"))
}

func TestTargetBlankCheck(t *testing.T) {
	flagged := targetBlankCheck(`<a href="x" target="_blank">out</a>`)
	require.Len(t, flagged, 1)
	assert.Equal(t, 1, flagged[0].Line)

	safe := targetBlankCheck(`<a href="x" target="_blank" rel="noopener noreferrer">out</a>`)
	assert.Empty(t, safe)
}

func TestHoverWithoutFocusCheck(t *testing.T) {
	flagged := hoverWithoutFocusCheck(".btn:hover { color: blue; }")
	require.Len(t, flagged, 1)
	assert.Contains(t, flagged[0].Message, ".btn")

	paired := hoverWithoutFocusCheck(".btn:hover { color: blue; }\n.btn:focus { color: blue; }")
	assert.Empty(t, paired)
}

func TestAbsenceCheckSkipsBlankContent(t *testing.T) {
	check := absenceCheck(doctypeRe)
	assert.Empty(t, check("   \n\t"))
	assert.Empty(t, check("<!DOCTYPE html><html></html>"))

	missing := check("<html></html>")
	require.Len(t, missing, 1)
	assert.Equal(t, 1, missing[0].Line)
}

func patternIDs(patterns []model.Pattern) []string {
	ids := make([]string, 0, len(patterns))
	for _, p := range patterns {
		ids = append(ids, p.ID)
	}
	return ids
}

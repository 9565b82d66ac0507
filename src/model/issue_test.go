package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueIDIsDeterministic(t *testing.T) {
	a := IssueID("index.html", "html-doctype", IssueMissingDoctype, 1, 1)
	b := IssueID("index.html", "html-doctype", IssueMissingDoctype, 1, 1)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestIssueIDVariesByLocation(t *testing.T) {
	base := IssueID("index.html", "js-var", IssueVarUsage, 1, 1)

	assert.NotEqual(t, base, IssueID("other.html", "js-var", IssueVarUsage, 1, 1))
	assert.NotEqual(t, base, IssueID("index.html", "js-var", IssueVarUsage, 2, 1))
	assert.NotEqual(t, base, IssueID("index.html", "js-var", IssueVarUsage, 1, 2))
	assert.NotEqual(t, base, IssueID("index.html", "js-eval", IssueVarUsage, 1, 1))
}

func TestIssueIDFallsBackToIssueType(t *testing.T) {
	withType := IssueID("app.js", "", IssueSyntaxError, 3, 1)
	keyed := IssueID("app.js", string(IssueSyntaxError), IssueSyntaxError, 3, 1)

	assert.Equal(t, keyed, withType)
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeverityMajor))
	assert.True(t, SeverityMajor.AtLeast(SeverityMajor))
	assert.False(t, SeverityWarning.AtLeast(SeverityMinor))
	assert.Greater(t, SeverityCritical.Rank(), SeverityWarning.Rank())
}

func TestLanguageForPath(t *testing.T) {
	assert.Equal(t, LanguageMarkup, LanguageForPath("a/b/index.HTML"))
	assert.Equal(t, LanguageMarkup, LanguageForPath("page.htm"))
	assert.Equal(t, LanguageStyle, LanguageForPath("main.css"))
	assert.Equal(t, LanguageScript, LanguageForPath("app.js"))
	assert.Equal(t, LanguageScript, LanguageForPath("mod.mjs"))
	assert.Equal(t, LanguageUnknown, LanguageForPath("notes.txt"))
	assert.Equal(t, LanguageUnknown, LanguageForPath("Makefile"))
}

func TestRiskLevelBuckets(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskLevelFor(0.9, 0.70, 0.50))
	assert.Equal(t, RiskMedium, RiskLevelFor(0.6, 0.70, 0.50))
	assert.Equal(t, RiskLow, RiskLevelFor(0.5, 0.70, 0.50))
	assert.Equal(t, RiskLow, RiskLevelFor(0.1, 0.70, 0.50))
	assert.Equal(t, RiskHigh, RiskLevelFor(0.5, 0.40, 0.20), "cutoffs are caller-supplied, not fixed")
}

func TestTimelineFor(t *testing.T) {
	assert.Equal(t, "days", TimelineFor(RiskHigh))
	assert.Equal(t, "weeks", TimelineFor(RiskMedium))
	assert.Equal(t, "months", TimelineFor(RiskLow))
}

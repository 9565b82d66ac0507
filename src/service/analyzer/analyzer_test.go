package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/service/catalog"
)

const cleanPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Demo</title>
</head>
<body>
<p>hello</p>
</body>
</html>`

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(catalog.New(), config.DefaultConfig())
}

func issuesOfType(issues []model.Issue, t model.IssueType) []model.Issue {
	var out []model.Issue
	for _, issue := range issues {
		if issue.IssueType == t {
			out = append(out, issue)
		}
	}
	return out
}

func TestAnalyzeCleanPageFindsNothing(t *testing.T) {
	a := newTestAnalyzer(t)
	issues := a.Analyze(context.Background(), map[string]string{"index.html": cleanPage})
	assert.Empty(t, issues)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{
		"index.html": `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
</head>
<body>
<img src="a.png">
<button onclick="go()">Go</button>
</body>
</html>`,
		"app.js": `var x = 1;
console.log(x);`,
	}

	first := a.Analyze(context.Background(), files)
	second := a.Analyze(context.Background(), files)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "same input must yield same issues, ids, and order")
}

func TestAnalyzeMissingViewportAndAlt(t *testing.T) {
	a := newTestAnalyzer(t)
	page := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Demo</title>
</head>
<body>
<img src="logo.png">
</body>
</html>`

	issues := a.Analyze(context.Background(), map[string]string{"index.html": page})

	require.Len(t, issues, 2)
	viewport := issuesOfType(issues, model.IssueMissingViewport)
	alt := issuesOfType(issues, model.IssueMissingAlt)
	require.Len(t, viewport, 1)
	require.Len(t, alt, 1)

	assert.Equal(t, 1, viewport[0].Line)
	assert.Equal(t, model.SeverityMajor, viewport[0].Severity)
	assert.Equal(t, 8, alt[0].Line)
	assert.NotEmpty(t, alt[0].FixSuggestion)
}

func TestAnalyzeCrossFileMissingCSSLink(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{
		"a.html": cleanPage,
		"x.css":  "body { color: red; }\nbody:focus { outline: 1px solid; }",
	}

	issues := a.Analyze(context.Background(), files)
	missing := issuesOfType(issues, model.IssueMissingCSSLink)

	require.Len(t, missing, 1)
	assert.Equal(t, "a.html", missing[0].FilePath)
	assert.Equal(t, 1, missing[0].Line)
	assert.Contains(t, missing[0].FixSuggestion, `<link rel="stylesheet" href="x.css">`)
}

func TestAnalyzeCrossFileLinkedStylesheetPasses(t *testing.T) {
	a := newTestAnalyzer(t)
	page := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="x.css">
</head>
<body></body>
</html>`
	files := map[string]string{
		"a.html": page,
		"x.css":  "body { color: red; }\nbody:focus { outline: 1px solid; }",
	}

	issues := a.Analyze(context.Background(), files)
	assert.Empty(t, issuesOfType(issues, model.IssueMissingCSSLink))
}

func TestAnalyzeSyntaxErrorSuppressesPatterns(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{
		"broken.js": "function broken( {\nconsole.log(1);\n",
		"good.html": cleanPage,
	}

	issues := a.Analyze(context.Background(), files)

	brokenIssues := []model.Issue{}
	for _, issue := range issues {
		if issue.FilePath == "broken.js" {
			brokenIssues = append(brokenIssues, issue)
		}
	}
	require.Len(t, brokenIssues, 1, "a file that fails to parse gets exactly one issue")
	assert.Equal(t, model.IssueSyntaxError, brokenIssues[0].IssueType)
	assert.Equal(t, model.SeverityCritical, brokenIssues[0].Severity)
	assert.NotEmpty(t, brokenIssues[0].Message)

	// The healthy file in the same run is unaffected
	for _, issue := range issues {
		if issue.FilePath == "good.html" {
			t.Fatalf("unexpected issue in healthy file: %+v", issue)
		}
	}
}

func TestAnalyzeDuplicateIDsFlaggedPerOccurrence(t *testing.T) {
	a := newTestAnalyzer(t)
	page := `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
<div id="card"></div>
<div id="card"></div>
</body>
</html>`

	issues := a.Analyze(context.Background(), map[string]string{"index.html": page})
	dupes := issuesOfType(issues, model.IssueDuplicateID)

	require.Len(t, dupes, 2)
	assert.Equal(t, model.SeverityCritical, dupes[0].Severity)
	assert.NotEqual(t, dupes[0].Line, dupes[1].Line)
	assert.NotEqual(t, dupes[0].ID, dupes[1].ID)
}

func TestAnalyzeIgnoresCommentedScript(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{
		"app.js": "// console.log(1);\nlet url = \"http://example.com\";\n",
	}

	issues := a.Analyze(context.Background(), files)
	assert.Empty(t, issuesOfType(issues, model.IssueConsoleLog))
}

func TestAnalyzeScriptPatternLocations(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{
		"app.js": "let a = 1;\neval(\"a\");\n",
	}

	issues := a.Analyze(context.Background(), files)
	evals := issuesOfType(issues, model.IssueEvalUsage)

	require.Len(t, evals, 1)
	assert.Equal(t, 2, evals[0].Line)
	assert.Equal(t, 1, evals[0].Column)
	assert.Equal(t, model.SeverityCritical, evals[0].Severity)
	assert.Equal(t, "js-eval", evals[0].PatternID)
}

func TestAnalyzeCacheReusesFileResults(t *testing.T) {
	a := newTestAnalyzer(t)
	files := map[string]string{"app.js": "var x = 1;\n"}
	cache := NewCache()

	first := a.AnalyzeWithCache(context.Background(), files, cache)
	assert.Equal(t, 1, cache.Len())

	second := a.AnalyzeWithCache(context.Background(), files, cache)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestScrubScriptKeepsOffsets(t *testing.T) {
	in := "let a = 1; // eval(x)\nlet u = \"http://x\";"
	out := scrubScript(in)
	assert.Equal(t, len(in), len(out))
	assert.NotContains(t, out, "eval")
	assert.Contains(t, out, `"http://x"`)
}

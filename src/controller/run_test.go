package controller

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webguard/src/config"
	"webguard/src/model"
)

func newTestController(t *testing.T) *RunController {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "metrics.db")
	c := NewRunController(cfg)
	t.Cleanup(c.Close)
	return c
}

func countCritical(issues []model.Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == model.SeverityCritical {
			n++
		}
	}
	return n
}

func TestRunHealsMissingViewportAndAlt(t *testing.T) {
	c := newTestController(t)
	files := map[string]string{
		"index.html": `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Demo</title>
</head>
<body>
<img src="logo.png">
</body>
</html>`,
	}

	report := c.Run(context.Background(), files, Options{Heal: true})

	require.NotNil(t, report)
	require.Len(t, report.Issues, 2)
	assert.Empty(t, report.RemainingIssues)
	assert.InDelta(t, 1.0, report.SuccessRate, 0.001)
	assert.Equal(t, 1, report.Iterations)
	assert.Len(t, report.FixLog, 2)
	assert.Contains(t, report.FixedFiles["index.html"], `name="viewport"`)
	assert.Contains(t, report.FixedFiles["index.html"], `alt="logo"`)
	assert.Equal(t, 2, report.Summary.TotalIssues)
	assert.Equal(t, 0, report.Summary.RemainingCount)
}

func TestRunPersistsMetrics(t *testing.T) {
	c := newTestController(t)
	require.NotNil(t, c.Store())

	files := map[string]string{"app.js": "var x = 1;\n"}
	report := c.Run(context.Background(), files, Options{Heal: true})
	require.Len(t, report.Issues, 1)

	runs, err := c.Store().ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].FileCount)
	assert.Equal(t, 1, runs[0].IssuesDetected)
	assert.Equal(t, 1, runs[0].IssuesFixed)
	assert.NotEmpty(t, runs[0].ID)

	stats, err := c.Store().PatternStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "js-var", stats[0].PatternID)
	assert.Equal(t, 1, stats[0].Frequency)
	assert.InDelta(t, 1.0, stats[0].FixSuccessRate, 0.001)
}

func TestRunAlwaysReturnsReport(t *testing.T) {
	c := newTestController(t)
	files := map[string]string{
		"broken.js":  "function ( { ]]]",
		"broken.css": "@@@@ not a stylesheet {{{",
		"weird.html": "\x00\x01\x02",
	}

	report := c.Run(context.Background(), files, Options{Heal: true})

	require.NotNil(t, report)
	assert.Equal(t, len(report.Issues), report.Summary.TotalIssues)
	assert.Equal(t, len(report.RemainingIssues), report.Summary.RemainingCount)
	assert.GreaterOrEqual(t, report.SuccessRate, 0.0)
	assert.LessOrEqual(t, report.SuccessRate, 1.0)
}

func TestRunNeverIncreasesCriticals(t *testing.T) {
	c := newTestController(t)
	files := map[string]string{
		"index.html": `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
<div id="panel"></div>
<div id="panel"></div>
</body>
</html>`,
		"app.js": "eval(\"x\");\nvar y = 2;\n",
	}

	report := c.Run(context.Background(), files, Options{Heal: true})

	before := countCritical(report.Issues)
	after := countCritical(report.RemainingIssues)
	require.Positive(t, before)
	assert.LessOrEqual(t, after, before)
	assert.Less(t, len(report.RemainingIssues), len(report.Issues))
}

func TestRunNeverTradesWarningForParseError(t *testing.T) {
	c := newTestController(t)
	// console.log sits on the continuation line of a multi-line expression;
	// neutralizing it must not leave the script unparseable.
	files := map[string]string{"app.js": "let t = 1 +\nconsole.log(2);\n"}

	report := c.Run(context.Background(), files, Options{Heal: true})

	require.Len(t, report.Issues, 1)
	assert.LessOrEqual(t,
		countCritical(report.RemainingIssues), countCritical(report.Issues))
	assert.Equal(t, files["app.js"], report.FixedFiles["app.js"])
	assert.Equal(t, report.Issues, report.RemainingIssues)
	assert.Equal(t, 1, report.Iterations, "an iteration with no applied fixes must end the loop")
	assert.Zero(t, report.SuccessRate)
}

func TestRunWithoutHealLeavesFilesAlone(t *testing.T) {
	c := newTestController(t)
	files := map[string]string{"app.js": "var x = 1;\nconsole.log(x);\n"}

	report := c.Run(context.Background(), files, Options{Heal: false})

	assert.Equal(t, files["app.js"], report.FixedFiles["app.js"])
	assert.Empty(t, report.FixLog)
	assert.Zero(t, report.Iterations)
	assert.Equal(t, report.Issues, report.RemainingIssues)
	assert.Zero(t, report.SuccessRate)
}

func TestRunEmptyInput(t *testing.T) {
	c := newTestController(t)

	report := c.Run(context.Background(), map[string]string{}, Options{Heal: true})

	require.NotNil(t, report)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Alerts)
	assert.Zero(t, report.SuccessRate)
	assert.Zero(t, report.Iterations)
}

func TestRunStopsWhenNothingIsFixable(t *testing.T) {
	c := newTestController(t)
	// No strategy handles !important, so the first iteration applies nothing
	// and the loop must stop instead of spinning to the cap.
	files := map[string]string{
		"style.css": "a { color: red !important; }\na:focus { outline: 1px solid; }",
	}

	report := c.Run(context.Background(), files, Options{Heal: true, MaxIterations: 5})

	require.NotEmpty(t, report.Issues)
	assert.Equal(t, 1, report.Iterations)
	assert.Empty(t, report.FixLog)
	assert.Equal(t, report.Issues, report.RemainingIssues)
	assert.Zero(t, report.SuccessRate)
}

func TestRunHotspotsRankByIssueCount(t *testing.T) {
	c := newTestController(t)
	files := map[string]string{
		"busy.js":  "var a = 1;\nvar b = 2;\nconsole.log(a);\n",
		"quiet.js": "var c = 3;\n",
	}

	report := c.Run(context.Background(), files, Options{Heal: false})

	require.NotEmpty(t, report.Summary.HotspotFiles)
	assert.Equal(t, "busy.js", report.Summary.HotspotFiles[0].FilePath)
	assert.Equal(t, 3, report.Summary.HotspotFiles[0].IssueCount)
}

package controller

import (
	"context"
	"sort"
	"time"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/service/analyzer"
	"webguard/src/service/catalog"
	"webguard/src/service/healer"
	"webguard/src/service/predictor"
	"webguard/src/service/store"
	"webguard/src/util"
)

// RunController orchestrates a full analyze → predict → heal → verify cycle.
// Every internal component degrades to partial results rather than raising,
// so a run always reaches the completed state and always yields a Report.
type RunController struct {
	cfg       *config.Config
	analyzer  *analyzer.Analyzer
	predictor *predictor.Predictor
	healer    *healer.Healer
	metrics   *store.Store // nil when persistence is disabled or unavailable
}

// Options control one run
type Options struct {
	// MaxIterations bounds the fix/re-analyze loop; 0 uses the configured
	// default. The cap exists because unfixable issues would otherwise
	// retry forever.
	MaxIterations int
	// Heal false analyzes and predicts without rewriting anything
	Heal bool
}

// NewRunController creates a run controller. A store that fails to open is
// logged and dropped; persistence is never a reason to refuse runs.
func NewRunController(cfg *config.Config) *RunController {
	cat := catalog.New()

	var metrics *store.Store
	if cfg.Store.Enabled {
		s, err := store.New(cfg.Store)
		if err != nil {
			util.Warn("Metrics store unavailable, continuing without persistence: %v", err)
		} else {
			metrics = s
		}
	}

	return &RunController{
		cfg:       cfg,
		analyzer:  analyzer.New(cat, cfg),
		predictor: predictor.New(cfg.Predictor),
		healer:    healer.New(cfg.Healer),
		metrics:   metrics,
	}
}

// Close releases the metrics store
func (c *RunController) Close() {
	if c.metrics != nil {
		_ = c.metrics.Close()
	}
}

// Store exposes the metrics store for reporting commands; nil when disabled
func (c *RunController) Store() *store.Store {
	return c.metrics
}

// Run executes one run over the given file set. It never returns an error:
// callers always receive a Report, even for empty or fully-broken input.
func (c *RunController) Run(ctx context.Context, files map[string]string, opts Options) *model.Report {
	started := time.Now()
	state := model.RunPending
	transition := func(next model.RunState) {
		util.Debug("Run state: %s -> %s", state, next)
		state = next
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = c.cfg.Healer.MaxIterations
	}
	if maxIterations < 1 {
		maxIterations = 1
	}

	cache := analyzer.NewCache()

	transition(model.RunAnalyzing)
	issues := c.analyzer.AnalyzeWithCache(ctx, files, cache)
	util.Info("Analysis found %d issues across %d files", len(issues), len(files))

	transition(model.RunPredicting)
	alerts := c.predictor.Predict(files, issues)

	fixedFiles := files
	remaining := issues
	var fixLog []model.FixEntry
	iterations := 0

	if opts.Heal && c.cfg.Healer.Enabled && len(issues) > 0 {
		transition(model.RunFixing)
		for iterations < maxIterations && len(remaining) > 0 {
			iterations++
			var log []model.FixEntry
			fixedFiles, log = c.healer.Heal(ctx, fixedFiles, remaining)
			fixLog = append(fixLog, log...)

			transition(model.RunVerifying)
			remaining = c.analyzer.AnalyzeWithCache(ctx, fixedFiles, cache)

			applied := 0
			for _, entry := range log {
				if entry.Success {
					applied++
				}
			}
			util.Info("Healing iteration %d: %d fixes applied, %d issues remain",
				iterations, applied, len(remaining))
			if applied == 0 {
				// Nothing left that a registered strategy can change;
				// retrying would only repeat the same failures.
				break
			}
		}
	}

	successes := 0
	for _, entry := range fixLog {
		if entry.Success {
			successes++
		}
	}
	successRate := 0.0
	if len(issues) > 0 {
		successRate = float64(successes) / float64(len(issues))
	}

	run := model.AnalysisRun{
		Timestamp:       time.Now().UTC(),
		FileCount:       len(files),
		IssuesDetected:  len(issues),
		IssuesFixed:     successes,
		PredictionsMade: len(alerts),
		Duration:        time.Since(started),
		SuccessRate:     successRate,
	}
	c.persist(ctx, run, issues, fixLog)

	transition(model.RunCompleted)
	return &model.Report{
		GeneratedAt:     time.Now().UTC(),
		Issues:          issues,
		RemainingIssues: remaining,
		Alerts:          alerts,
		FixLog:          fixLog,
		FixedFiles:      fixedFiles,
		SuccessRate:     successRate,
		Duration:        run.Duration,
		Iterations:      iterations,
		Summary:         c.generateSummary(issues, remaining, alerts),
	}
}

// persist writes the run record and pattern stats. Failures are logged and
// swallowed: the Report still carries accurate in-memory data.
func (c *RunController) persist(ctx context.Context, run model.AnalysisRun, issues []model.Issue, fixLog []model.FixEntry) {
	if c.metrics == nil {
		return
	}
	if err := c.metrics.SaveRun(ctx, run); err != nil {
		util.Error("Persisting run record failed: %v", err)
	}
	if err := c.metrics.UpdatePatternStats(ctx, issues, fixLog); err != nil {
		util.Error("Updating pattern stats failed: %v", err)
	}
}

func (c *RunController) generateSummary(issues, remaining []model.Issue, alerts []model.PredictiveAlert) model.ReportSummary {
	bySeverity := make(map[model.Severity]int)
	byType := make(map[model.IssueType]int)
	byFile := make(map[string]int)
	for _, issue := range issues {
		bySeverity[issue.Severity]++
		byType[issue.IssueType]++
		byFile[issue.FilePath]++
	}

	byRisk := make(map[model.RiskLevel]int)
	for _, alert := range alerts {
		byRisk[alert.RiskLevel]++
	}

	type fileCount struct {
		path  string
		count int
	}
	files := make([]fileCount, 0, len(byFile))
	for path, count := range byFile {
		files = append(files, fileCount{path, count})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].count != files[j].count {
			return files[i].count > files[j].count
		}
		return files[i].path < files[j].path
	})

	topN := c.cfg.Output.HotspotsTopN
	if topN > len(files) {
		topN = len(files)
	}
	hotspots := make([]model.FileHotspot, topN)
	for i := 0; i < topN; i++ {
		hotspots[i] = model.FileHotspot{FilePath: files[i].path, IssueCount: files[i].count}
	}

	return model.ReportSummary{
		TotalIssues:    len(issues),
		RemainingCount: len(remaining),
		BySeverity:     bySeverity,
		ByCategory:     byType,
		ByRiskLevel:    byRisk,
		HotspotFiles:   hotspots,
	}
}

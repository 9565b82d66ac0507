// Package analyzer scans a set of generated web artifacts for defects using
// the pattern catalog, dedicated structural passes, and cross-file dependency
// checks. Analysis never returns an error to its caller: malformed patterns
// are skipped, parse failures become critical issues, and the result is
// always a deterministic, (possibly empty) ordered issue list.
package analyzer

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/service/catalog"
	"webguard/src/util"
)

// Analyzer detects issues in a path → content file mapping
type Analyzer struct {
	catalog    *catalog.Catalog
	cfg        config.AnalyzerConfig
	exclusions *util.ExclusionMatcher
}

// New creates a new analyzer
func New(cat *catalog.Catalog, cfg *config.Config) *Analyzer {
	return &Analyzer{
		catalog:    cat,
		cfg:        cfg.Analyzer,
		exclusions: util.NewExclusionMatcher(cfg.Exclusions),
	}
}

// Analyze runs per-file and cross-file analysis over the file set
func (a *Analyzer) Analyze(ctx context.Context, files map[string]string) []model.Issue {
	return a.AnalyzeWithCache(ctx, files, nil)
}

// AnalyzeWithCache is Analyze with an explicit per-run result cache. The
// cache is owned by the caller; passing nil disables caching. Per-file
// analysis runs in a bounded worker pool, files share no mutable state, and
// results are re-sorted afterwards so output order is deterministic.
func (a *Analyzer) AnalyzeWithCache(ctx context.Context, files map[string]string, cache *Cache) []model.Issue {
	paths := sortedPaths(files)

	var (
		mu     sync.Mutex
		issues []model.Issue
	)

	g, gctx := errgroup.WithContext(ctx)
	workers := a.cfg.MaxParallelFiles
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, path := range paths {
		if a.exclusions.Matches(path) {
			util.Debug("Analyzer: skipping excluded file %s", path)
			continue
		}
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}

			content := files[path]
			var fileIssues []model.Issue
			if cached, ok := cache.get(path, content); ok {
				fileIssues = cached
			} else {
				fileIssues = a.analyzeFile(path, content)
				cache.put(path, content, fileIssues)
			}

			mu.Lock()
			issues = append(issues, fileIssues...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; degraded files yield issues instead

	if a.cfg.CrossFileChecks {
		issues = append(issues, a.crossFilePass(files)...)
	}

	sortIssues(issues)
	return issues
}

// analyzeFile dispatches by inferred language and applies catalog patterns
// plus the structural passes patterns cannot express
func (a *Analyzer) analyzeFile(path, content string) []model.Issue {
	lang := model.LanguageForPath(path)

	var issues []model.Issue
	switch lang {
	case model.LanguageScript:
		if a.cfg.SyntaxValidation {
			if issue := validateScriptSyntax(path, content); issue != nil {
				// A file that fails to parse cannot be meaningfully
				// pattern-matched further.
				return []model.Issue{*issue}
			}
		}
	case model.LanguageMarkup:
		issues = append(issues, a.markupStructuralPass(path, content)...)
	case model.LanguageUnknown:
		util.Debug("Analyzer: no language inferred for %s", path)
		return nil
	}

	// Patterns match against comment-scrubbed text so neutralized code
	// stays neutralized; offsets are unchanged by the scrub.
	scrubbed := scrubComments(content, lang)
	for _, p := range a.catalog.RulesFor(lang) {
		issues = append(issues, a.applyPattern(p, path, scrubbed)...)
	}
	return issues
}

// applyPattern runs one pattern against one file. A pattern whose matcher
// panics is logged and skipped; it must never abort analysis of an
// otherwise-healthy file set.
func (a *Analyzer) applyPattern(p model.Pattern, path, content string) (issues []model.Issue) {
	defer func() {
		if r := recover(); r != nil {
			util.Warn("Analyzer: pattern %s failed on %s: %v", p.ID, path, r)
			issues = nil
		}
	}()

	var matches []model.PatternMatch
	switch {
	case p.Matcher != nil:
		for _, loc := range p.Matcher.FindAllStringIndex(content, -1) {
			// Guard classes like (?:^|[^-\w]) can start a match on the
			// previous line's newline; position at the token itself.
			start := loc[0]
			for start < loc[1] && isSpace(content[start]) {
				start++
			}
			line, col := util.LineColAt(content, start)
			matches = append(matches, model.PatternMatch{Line: line, Column: col, Text: content[start:loc[1]]})
		}
	case p.Check != nil:
		matches = p.Check(content)
	default:
		util.Warn("Analyzer: pattern %s has no matcher, skipping", p.ID)
		return nil
	}

	for _, m := range matches {
		msg := p.Description
		if m.Message != "" {
			msg = m.Message
		}
		issues = append(issues, model.Issue{
			ID:            model.IssueID(path, p.ID, p.IssueType, m.Line, m.Column),
			FilePath:      path,
			Line:          m.Line,
			Column:        m.Column,
			IssueType:     p.IssueType,
			Severity:      p.Severity,
			Message:       msg,
			FixSuggestion: p.FixTemplate,
			PatternID:     p.ID,
		})
	}
	return issues
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func sortIssues(issues []model.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.IssueType < b.IssueType
	})
}

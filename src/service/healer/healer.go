// Package healer rewrites files to remove fixable defects. Fixes are applied
// per file in reverse line order: fixes that insert or delete lines shift
// everything below them, so applying bottom-up keeps the line numbers of
// not-yet-applied fixes valid. Healing different files in parallel is safe;
// issues within one file are strictly sequenced.
package healer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/service/analyzer"
	"webguard/src/util"
)

// Healer applies registered fix strategies to detected issues
type Healer struct {
	cfg      config.HealerConfig
	registry map[model.IssueType]FixStrategy
}

// New creates a healer with the closed builtin strategy set
func New(cfg config.HealerConfig) *Healer {
	registry := make(map[model.IssueType]FixStrategy)
	for _, s := range strategies() {
		registry[s.IssueType()] = s
	}
	return &Healer{cfg: cfg, registry: registry}
}

// HasStrategy reports whether an issue type has a registered fix
func (h *Healer) HasStrategy(t model.IssueType) bool {
	_, ok := h.registry[t]
	return ok
}

// Heal applies fixes for the given issues and returns the rewritten file set
// plus the application log. Files without issues are passed through
// unchanged. A failing strategy is logged as a failure entry and leaves its
// issue unresolved; it is never silently dropped.
func (h *Healer) Heal(ctx context.Context, files map[string]string, issues []model.Issue) (map[string]string, []model.FixEntry) {
	byFile := make(map[string][]model.Issue)
	for _, issue := range issues {
		byFile[issue.FilePath] = append(byFile[issue.FilePath], issue)
	}

	fixed := make(map[string]string, len(files))
	for path, content := range files {
		fixed[path] = content
	}

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		if _, ok := files[path]; ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var (
		mu      sync.Mutex
		perFile = make(map[string][]model.FixEntry, len(paths))
	)

	g, gctx := errgroup.WithContext(ctx)
	workers := h.cfg.MaxParallelFiles
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			content, log := h.healFile(path, files[path], byFile[path])
			mu.Lock()
			fixed[path] = content
			perFile[path] = log
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Flatten in sorted path order so the log is deterministic
	var fixLog []model.FixEntry
	for _, path := range paths {
		fixLog = append(fixLog, perFile[path]...)
	}
	return fixed, fixLog
}

// healFile applies the file's fixes bottom-up. This ordering invariant is
// load-bearing: do not reorder.
func (h *Healer) healFile(path, content string, issues []model.Issue) (string, []model.FixEntry) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line > issues[j].Line
		}
		if issues[i].Column != issues[j].Column {
			return issues[i].Column > issues[j].Column
		}
		return issues[i].IssueType > issues[j].IssueType
	})

	lines := strings.Split(content, "\n")
	isScript := model.LanguageForPath(path) == model.LanguageScript
	var log []model.FixEntry

	for _, issue := range issues {
		strategy, ok := h.registry[issue.IssueType]
		if !ok {
			// No fabricated fixes: the issue passes through and shows up
			// again in the next analysis pass.
			util.Debug("Healer: no strategy for %s, leaving %s:%d unresolved",
				issue.IssueType, issue.FilePath, issue.Line)
			continue
		}

		updated, err := h.applyStrategy(strategy, lines, issue)
		if err == nil && isScript && !analyzer.ScriptParses(strings.Join(updated, "\n")) {
			// A fix that trades a lesser issue for a parse error makes the
			// file worse; roll it back. Commenting out the continuation
			// line of a multi-line expression is the typical case.
			err = fmt.Errorf("fix would introduce a parse error")
		}
		if err != nil {
			util.Warn("Healer: fix for %s in %s:%d failed: %v",
				issue.IssueType, issue.FilePath, issue.Line, err)
			log = append(log, model.FixEntry{
				IssueType: issue.IssueType,
				FilePath:  issue.FilePath,
				Line:      issue.Line,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		lines = updated
		entry := model.FixEntry{
			IssueType: issue.IssueType,
			FilePath:  issue.FilePath,
			Line:      issue.Line,
			Success:   true,
		}
		util.Info("%s", entry)
		log = append(log, entry)
	}

	return strings.Join(lines, "\n"), log
}

// applyStrategy isolates a single fix application; a panicking strategy is
// converted into a failure so the run keeps going. Strategies edit lines in
// place, so they get a copy: a failed or rejected fix must leave the file
// exactly as it was.
func (h *Healer) applyStrategy(s FixStrategy, lines []string, issue model.Issue) (out []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("strategy panicked: %v", r)
		}
	}()
	work := make([]string, len(lines))
	copy(work, lines)
	return s.Apply(work, issue)
}

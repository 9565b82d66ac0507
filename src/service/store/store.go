// Package store persists run metrics in an append-only SQLite database:
// one record per analysis run plus incrementally updated per-pattern
// counters for longitudinal reporting.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"webguard/src/config"
	"webguard/src/model"
)

// Store is the metrics store. Writes are serialized through a single
// mutex so append-only records are never interleaved.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// PatternStat is one row of the longitudinal pattern table
type PatternStat struct {
	PatternID      string    `json:"pattern_id"`
	Frequency      int       `json:"frequency"`
	Severity       string    `json:"severity"`
	LastSeen       time.Time `json:"last_seen"`
	FixSuccessRate float64   `json:"fix_success_rate"`
}

// New opens (creating if needed) the metrics database at the configured path
func New(cfg config.StoreConfig) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging metrics database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun appends one immutable run record
func (s *Store) SaveRun(ctx context.Context, run model.AnalysisRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs
			(id, timestamp, file_count, issues_detected, issues_fixed,
			 predictions_made, duration_ms, success_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.Timestamp.UTC(), run.FileCount, run.IssuesDetected,
		run.IssuesFixed, run.PredictionsMade, run.Duration.Milliseconds(),
		run.SuccessRate,
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

// UpdatePatternStats increments the per-pattern counters from one run's
// issues and fix log
func (s *Store) UpdatePatternStats(ctx context.Context, issues []model.Issue, fixLog []model.FixEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type counter struct {
		frequency int
		fixed     int
		severity  model.Severity
	}
	counts := map[string]*counter{}
	for _, issue := range issues {
		key := issue.PatternID
		if key == "" {
			key = string(issue.IssueType)
		}
		c, ok := counts[key]
		if !ok {
			c = &counter{severity: issue.Severity}
			counts[key] = c
		}
		c.frequency++
		if issue.Severity.Rank() > c.severity.Rank() {
			c.severity = issue.Severity
		}
	}
	fixedByType := map[model.IssueType]int{}
	for _, entry := range fixLog {
		if entry.Success {
			fixedByType[entry.IssueType]++
		}
	}
	for _, issue := range issues {
		key := issue.PatternID
		if key == "" {
			key = string(issue.IssueType)
		}
		if fixedByType[issue.IssueType] > 0 {
			counts[key].fixed++
			fixedByType[issue.IssueType]--
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting stats transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for key, c := range counts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pattern_stats (pattern_id, frequency, severity, last_seen, fixed_count)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(pattern_id) DO UPDATE SET
				frequency = frequency + excluded.frequency,
				severity = excluded.severity,
				last_seen = excluded.last_seen,
				fixed_count = fixed_count + excluded.fixed_count`,
			key, c.frequency, string(c.severity), now, c.fixed,
		)
		if err != nil {
			return fmt.Errorf("upserting stats for %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stats: %w", err)
	}
	return nil
}

// ListRuns returns the most recent run records, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, file_count, issues_detected, issues_fixed,
		       predictions_made, duration_ms, success_rate
		FROM analysis_runs
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.AnalysisRun
	for rows.Next() {
		var (
			run        model.AnalysisRun
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.Timestamp, &run.FileCount,
			&run.IssuesDetected, &run.IssuesFixed, &run.PredictionsMade,
			&durationMS, &run.SuccessRate); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run records: %w", err)
	}
	return runs, nil
}

// PatternStats returns the longitudinal pattern table ordered by frequency
func (s *Store) PatternStats(ctx context.Context) ([]PatternStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pattern_id, frequency, severity, last_seen, fixed_count
		FROM pattern_stats
		ORDER BY frequency DESC, pattern_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying pattern stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []PatternStat
	for rows.Next() {
		var (
			st    PatternStat
			fixed int
		)
		if err := rows.Scan(&st.PatternID, &st.Frequency, &st.Severity, &st.LastSeen, &fixed); err != nil {
			return nil, fmt.Errorf("scanning pattern stat: %w", err)
		}
		if st.Frequency > 0 {
			st.FixSuccessRate = float64(fixed) / float64(st.Frequency)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pattern stats: %w", err)
	}
	return stats, nil
}

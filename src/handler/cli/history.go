package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"webguard/src/service/store"
)

func (h *Handler) historyCmd() *cobra.Command {
	var (
		limit        int
		showPatterns bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted run history and pattern statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !h.cfg.Store.Enabled {
				return fmt.Errorf("metrics store is disabled in configuration")
			}
			s, err := store.New(h.cfg.Store)
			if err != nil {
				return fmt.Errorf("opening metrics store: %w", err)
			}
			defer func() { _ = s.Close() }()

			ctx := context.Background()

			runs, err := s.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Println("No recorded runs.")
			} else {
				fmt.Printf("%-36s  %-20s  %5s  %6s  %5s  %7s\n",
					"RUN", "TIMESTAMP", "FILES", "ISSUES", "FIXED", "SUCCESS")
				for _, run := range runs {
					fmt.Printf("%-36s  %-20s  %5d  %6d  %5d  %6.0f%%\n",
						run.ID, run.Timestamp.Format("2006-01-02 15:04:05"),
						run.FileCount, run.IssuesDetected, run.IssuesFixed,
						run.SuccessRate*100)
				}
			}

			if showPatterns {
				stats, err := s.PatternStats(ctx)
				if err != nil {
					return fmt.Errorf("listing pattern stats: %w", err)
				}
				fmt.Printf("\n%-24s  %9s  %-8s  %7s\n", "PATTERN", "FREQUENCY", "SEVERITY", "FIXED")
				for _, st := range stats {
					fmt.Printf("%-24s  %9d  %-8s  %6.0f%%\n",
						st.PatternID, st.Frequency, st.Severity, st.FixSuccessRate*100)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")
	cmd.Flags().BoolVar(&showPatterns, "patterns", false, "Include per-pattern statistics")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"webguard/src/service/catalog"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("webguard %s (pattern catalog v%s)\n", h.cfg.Agent.Version, catalog.Version)
		},
	}
}

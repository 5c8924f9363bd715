package cli

import (
	"fmt"
	"strings"
	"time"

	"futarinavi/internal/config"
	"futarinavi/internal/dates"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

// NewRootCmd builds the navi command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "navi",
		Short: "FutariNavi - marriage procedure timeline and benefit simulator",
		Long: `navi prints the procedures a couple has to handle after registering
their marriage, ordered by deadline, and estimates which benefits and
support programs they can use.

Dates are calendar days in the configured TIMEZONE (default Asia/Tokyo).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newTimelineCmd(),
		newSimulateCmd(),
		newProgramsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "navi %s\ncommit: %s\n", appVersion, appCommit)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func parseDay(flag, s string) (time.Time, error) {
	t, err := dates.ParseLocalDate(s, config.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD: %w", flag, err)
	}
	return t, nil
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

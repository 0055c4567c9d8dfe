package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wisal",
	Short: "Terminal client for the Wisal aid-distribution platform",
	Long: `wisal is a terminal client for the Wisal charitable-aid distribution
platform. It signs an institution employee in against the remote API, keeps
the session across runs, and opens a role-gated dashboard for the daily
work: distribution rounds, beneficiaries, posts, delivery verification,
staff, and messages.

Running wisal with no subcommand opens the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command bound to ctx, so Ctrl+C tears the
// dashboard down cleanly
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/wisal/config.yaml)")
}

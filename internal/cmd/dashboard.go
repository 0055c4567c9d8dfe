package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wisalhq/wisal-admin/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the full-screen dashboard in the terminal. The dashboard restores
any persisted session, signs you in when there is none, and routes you to the
screens your role is allowed to see.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	env, err := buildEnv(true)
	if err != nil {
		return err
	}
	defer env.close()
	defer env.persistCookies()

	return tui.Run(cmd.Context(), tui.Services{
		Client:  env.client,
		Session: env.session,
		Logger:  env.logger,
	})
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	Long: `Sign out of the Wisal platform. The persisted session is cleared even
when the server cannot be reached; the refresh cookie simply expires on its own
in that case.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := buildEnv(false)
	if err != nil {
		return err
	}
	defer env.close()

	logoutErr := env.session.Logout(cmd.Context())
	env.persistCookies()

	if logoutErr != nil {
		env.logger.WithError(logoutErr).Warn("server-side sign-out failed")
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out locally; the server could not be reached.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wisalhq/wisal-admin/internal/auth"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show whether a session is active and which identity it resolves to.
The command attempts a silent refresh first, so a valid refresh cookie from a
previous sign-in counts as signed in.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(statusCmd)
}

// statusInfo is the machine-readable session summary.
type statusInfo struct {
	Authenticated bool   `json:"authenticated"`
	EmployeeID    string `json:"employee_id,omitempty"`
	Role          string `json:"role,omitempty"`
	InstitutionID string `json:"institution_id,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := buildEnv(false)
	if err != nil {
		return err
	}
	defer env.close()

	env.session.Bootstrap(cmd.Context())
	env.persistCookies()

	state := env.session.State()
	info := statusInfo{
		Authenticated: state.Authenticated,
		EmployeeID:    state.EmployeeID,
		Role:          string(state.Role),
		InstitutionID: state.InstitutionID,
	}
	if info.EmployeeID == "" {
		if claims := auth.DecodeClaims(env.client.Credential()); claims != nil {
			info.EmployeeID = claims.Subject()
		}
	}

	if statusJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	if !info.Authenticated {
		fmt.Fprintln(out, "Not signed in. Run `wisal login` first.")
		return nil
	}

	fmt.Fprintln(out, "Signed in.")
	if info.EmployeeID != "" {
		fmt.Fprintf(out, "  Employee:    %s\n", info.EmployeeID)
	}
	if info.Role != "" {
		fmt.Fprintf(out, "  Role:        %s\n", info.Role)
	}
	if info.InstitutionID != "" {
		fmt.Fprintf(out, "  Institution: %s\n", info.InstitutionID)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wisalhq/wisal-admin/internal/errors"
)

var (
	loginEmail         string
	loginPassword      string
	loginPasswordStdin bool
)

var readPasswordFunc = term.ReadPassword // mockable

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Wisal platform",
	Long: `Sign in with your institution account. Missing credentials are prompted
for interactively; in scripts, pass --email together with --password-stdin.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prefer --password-stdin)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "read the password from standard input")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := buildEnv(false)
	if err != nil {
		return err
	}
	defer env.close()

	email := strings.TrimSpace(loginEmail)
	password := loginPassword

	if loginPasswordStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(string(data), "\r\n")
	}

	if email == "" {
		if err := promptEmail(&email); err != nil {
			return err
		}
	}

	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(pwd)
	}

	if err := env.session.Login(cmd.Context(), email, password); err != nil {
		return errors.NewLoginFailedError(err)
	}
	env.persistCookies()

	state := env.session.State()
	role := string(state.Role)
	if role == "" {
		role = "no role"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", email, role)
	return nil
}

// promptEmail asks for the email interactively
func promptEmail(email *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("email is required")
					}
					if !strings.Contains(v, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	*email = strings.TrimSpace(*email)
	return nil
}

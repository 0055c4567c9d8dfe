package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wisalhq/wisal-admin/internal/config"
)

var (
	configInitForce bool
	configInitPath  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the wisal configuration",
	Long: `Manage the wisal configuration stored at ~/.config/wisal/config.yaml.

Every value can also be set through WISAL_* environment variables, which take
precedence over the file.

Examples:
  # Write a starter configuration file
  wisal config init

  # Show the effective configuration
  wisal config show

  # Show the configuration file path
  wisal config path
`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long:  `Write a configuration file populated with defaults. Refuses to overwrite an existing file unless --force is set.`,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration after merging the file, environment variables, and defaults.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration file")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "write to this path instead of the default location")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitPath
	if path == "" {
		dir, err := config.DefaultConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := config.WriteStarter(path, configInitForce); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cfgFile)
		return nil
	}

	dir, err := config.DefaultConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, "config.yaml"))
	return nil
}

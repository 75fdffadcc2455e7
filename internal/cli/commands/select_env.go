package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/cli/config"
	"github.com/detective-ambiental/detective/internal/cli/envselect"
	"github.com/detective-ambiental/detective/internal/cli/userconfig"
)

// NewSelectEnvCmd creates the select-env command
func NewSelectEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-env [alias]",
		Short: "Select the backend environment to use for commands",
		Long: `Select the backend environment to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ detective select-env             # Interactive selection
  $ detective select-env production  # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var alias string
			if len(args) > 0 {
				alias = args[0]
			}
			return runSelectEnv(alias)
		},
	}

	return cmd
}

func runSelectEnv(alias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'detective init' to create a configuration file", err)
	}

	var env *config.Environment

	if alias != "" {
		env, err = cfg.GetEnvironmentByAlias(alias)
		if err != nil {
			return err
		}
	} else {
		env, err = envselect.PromptEnvironmentSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedEnvironment(env.Alias); err != nil {
		return fmt.Errorf("failed to save selected environment: %w", err)
	}

	fmt.Printf("Selected environment: %s (%s)\n", env.Alias, env.URL)
	return nil
}

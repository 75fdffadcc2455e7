package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/cli/commands"
	"github.com/detective-ambiental/detective/internal/config"
	"github.com/detective-ambiental/detective/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "detective",
	Short: "Detective Ambiental - Admin tools for environmental-incident reports",
	Long: `Detective Ambiental CLI - Manage the university's environmental-incident
reports from the terminal.

Authenticates administrators against the Detective Ambiental backend and
exposes the dashboard's operations: reports, categories, reviews and
administrator accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			logger.Init("warn", "console")
			return
		}
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("detective version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewReportsCmd())
	rootCmd.AddCommand(commands.NewCategoriesCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewPasswdCmd())
	rootCmd.AddCommand(commands.NewConfirmCmd())
	rootCmd.AddCommand(commands.NewSelectEnvCmd())
	rootCmd.AddCommand(commands.NewDashCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

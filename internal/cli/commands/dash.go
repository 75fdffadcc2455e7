package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the admin dashboard in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(envAlias)
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias to use")

	return cmd
}

func runDash(envAlias string) error {
	env, err := resolveEnvironment(envAlias)
	if err != nil {
		return err
	}

	fmt.Printf("Opening dashboard for %s...\n", env.Alias)
	fmt.Printf("URL: %s\n", env.URL)

	if err := openBrowser(env.URL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, env.URL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

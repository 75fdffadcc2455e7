package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "init <url>",
		Short: "Register a Detective Ambiental backend",
		Long: `Register a Detective Ambiental backend in ./detective.json.

Examples:
  $ detective init https://api.detective.example.mx
  $ detective init https://staging.detective.example.mx --alias staging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], alias)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Alias for the environment (default: production, then env-N)")

	return cmd
}

func runInit(url, alias string) error {
	url = strings.TrimRight(url, "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		// Load existing config
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing detective.json")
	} else {
		cfg = &config.Config{
			Environments: []config.Environment{},
		}
		isNewConfig = true
	}

	// Check if environment already exists
	for _, env := range cfg.Environments {
		if env.URL == url {
			fmt.Printf("Environment with URL %s already exists in detective.json\n", url)
			return nil
		}
	}

	if alias == "" {
		if len(cfg.Environments) == 0 {
			alias = "production"
		} else {
			alias = fmt.Sprintf("env-%d", len(cfg.Environments)+1)
		}
	}

	cfg.Environments = append(cfg.Environments, config.Environment{
		URL:   url,
		Alias: alias,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./detective.json with environment %s (%s)\n", alias, url)
	} else {
		fmt.Printf("✓ Added environment %s (%s) to ./detective.json\n", alias, url)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'detective login' to authenticate as an administrator")
	fmt.Println("  2. Run 'detective reports ls' to list incident reports")

	return nil
}

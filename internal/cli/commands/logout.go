package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/cli/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(auth.NewKeyringStore(), os.Stdout)
		},
	}
}

// runLogout drops the stored token. Logging out while already anonymous
// is fine; the operation never fails.
func runLogout(tokens auth.TokenStore, out io.Writer) error {
	if err := tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	fmt.Fprintln(out, "✓ Sesión cerrada")
	return nil
}

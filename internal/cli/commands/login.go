package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/detective-ambiental/detective/internal/api"
)

// loginSession is the slice of the session manager the login command
// needs; tests substitute a mock.
type loginSession interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
}

type loginOptions struct {
	session  loginSession
	out      io.Writer
	envAlias string
	email    string
	password string
}

type loginOption func(*loginOptions)

func WithLoginSession(s loginSession) loginOption {
	return func(o *loginOptions) { o.session = s }
}

func WithLoginOutput(w io.Writer) loginOption {
	return func(o *loginOptions) { o.out = w }
}

func WithLoginCredentials(email, password string) loginOption {
	return func(o *loginOptions) {
		o.email = email
		o.password = password
	}
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, envAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Detective Ambiental backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(
				WithLoginCredentials(email, password),
				func(o *loginOptions) { o.envAlias = envAlias },
			)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set DETECTIVE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set DETECTIVE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses the selected environment if not specified)")

	return cmd
}

func runLogin(opts ...loginOption) error {
	o := loginOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	// Check for environment variables (useful for CI/CD)
	if o.email == "" {
		o.email = os.Getenv("DETECTIVE_EMAIL")
	}
	if o.password == "" {
		o.password = os.Getenv("DETECTIVE_PASSWORD")
	}

	if o.email == "" {
		return fmt.Errorf("email is required (use --email flag or DETECTIVE_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if o.password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(o.out, "Contraseña: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			o.password = string(bytePassword)
			fmt.Fprintln(o.out)
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or DETECTIVE_PASSWORD env var)")
		}
	}

	if o.session == nil {
		d, err := newDeps(o.envAlias)
		if err != nil {
			return err
		}
		o.session = d.manager
		fmt.Fprintf(o.out, "Iniciando sesión en %s (%s)...\n", d.env.Alias, d.env.URL)
	}

	user, err := o.session.Login(context.Background(), o.email, o.password)
	if err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Sesión iniciada")
	fmt.Fprintf(o.out, "  Usuario: %s (%s)\n", user.FullName(), user.Email)
	if user.PermissionConfig {
		fmt.Fprintln(o.out, "  Permisos: configuración")
	}

	return nil
}

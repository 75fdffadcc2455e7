package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passwordService is the slice of the session service the password
// commands use.
type passwordService interface {
	UpdatePassword(ctx context.Context, current, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type passwdOptions struct {
	session  sessionState
	service  passwordService
	out      io.Writer
	envAlias string
}

type passwdOption func(*passwdOptions)

func WithPasswdSession(s sessionState) passwdOption {
	return func(o *passwdOptions) { o.session = s }
}

func WithPasswdService(s passwordService) passwdOption {
	return func(o *passwdOptions) { o.service = s }
}

func WithPasswdOutput(w io.Writer) passwdOption {
	return func(o *passwdOptions) { o.out = w }
}

func (o *passwdOptions) resolve() error {
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.session == nil || o.service == nil {
		d, err := newDeps(o.envAlias)
		if err != nil {
			return err
		}
		if o.session == nil {
			o.session = d.manager
		}
		if o.service == nil {
			o.service = d.service
		}
	}
	return nil
}

// NewPasswdCmd creates the password command group
func NewPasswdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Password flows",
	}

	var envAlias string
	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias")

	withEnv := func(o *passwdOptions) { o.envAlias = envAlias }

	var current, newPassword string
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Change the current user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswdUpdate(current, newPassword, withEnv)
		},
	}
	updateCmd.Flags().StringVar(&current, "current", "", "Current password (will prompt if not provided)")
	updateCmd.Flags().StringVar(&newPassword, "new", "", "New password (will prompt if not provided)")
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "forgot <email>",
		Short: "Request a password-reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswdForgot(args[0], withEnv)
		},
	})

	var resetPassword string
	resetCmd := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswdReset(args[0], resetPassword, withEnv)
		},
	}
	resetCmd.Flags().StringVar(&resetPassword, "password", "", "New password (will prompt if not provided)")
	cmd.AddCommand(resetCmd)

	return cmd
}

// promptPassword reads a password from the terminal when the flag was
// not provided. Non-interactive runs must pass the flag.
func promptPassword(out io.Writer, label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode")
	}
	fmt.Fprintf(out, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(out)
	return string(bytePassword), nil
}

func runPasswdUpdate(current, newPassword string, opts ...passwdOption) error {
	var o passwdOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	var err error
	if current == "" {
		if current, err = promptPassword(o.out, "Contraseña actual"); err != nil {
			return err
		}
	}
	if newPassword == "" {
		if newPassword, err = promptPassword(o.out, "Contraseña nueva"); err != nil {
			return err
		}
	}

	if err := o.service.UpdatePassword(context.Background(), current, newPassword); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Se actualizó correctamente tu contraseña")
	return nil
}

func runPasswdForgot(email string, opts ...passwdOption) error {
	var o passwdOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	// Public flow: no session required.
	if err := o.service.ForgotPassword(context.Background(), email); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Se envió un correo de recuperación a %s\n", email)
	return nil
}

func runPasswdReset(token, password string, opts ...passwdOption) error {
	var o passwdOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	var err error
	if password == "" {
		if password, err = promptPassword(o.out, "Contraseña nueva"); err != nil {
			return err
		}
	}

	// Public flow: the reset token in the argument is the credential.
	if err := o.service.ResetPassword(context.Background(), token, password); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Se modificó la contraseña correctamente")
	return nil
}

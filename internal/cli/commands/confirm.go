package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// accountValidator is the slice of the session service the confirm
// command uses.
type accountValidator interface {
	ValidateAccount(ctx context.Context, otp string) error
}

type confirmOptions struct {
	service  accountValidator
	out      io.Writer
	envAlias string
}

type confirmOption func(*confirmOptions)

func WithConfirmService(s accountValidator) confirmOption {
	return func(o *confirmOptions) { o.service = s }
}

func WithConfirmOutput(w io.Writer) confirmOption {
	return func(o *confirmOptions) { o.out = w }
}

// NewConfirmCmd creates the account-confirmation command
func NewConfirmCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:   "confirm <otp>",
		Short: "Confirm a new account with its OTP code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfirm(args[0], func(o *confirmOptions) { o.envAlias = envAlias })
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias")

	return cmd
}

func runConfirm(otp string, opts ...confirmOption) error {
	o := confirmOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.service == nil {
		d, err := newDeps(o.envAlias)
		if err != nil {
			return err
		}
		o.service = d.service
	}

	// Public flow: confirmation happens before the account can log in.
	if err := o.service.ValidateAccount(context.Background(), otp); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Cuenta verificada correctamente")
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type whoamiOptions struct {
	session  sessionState
	out      io.Writer
	envAlias string
}

type whoamiOption func(*whoamiOptions)

func WithWhoamiSession(s sessionState) whoamiOption {
	return func(o *whoamiOptions) { o.session = s }
}

func WithWhoamiOutput(w io.Writer) whoamiOption {
	return func(o *whoamiOptions) { o.out = w }
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(func(o *whoamiOptions) { o.envAlias = envAlias })
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias")

	return cmd
}

func runWhoami(opts ...whoamiOption) error {
	o := whoamiOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.session == nil {
		d, err := newDeps(o.envAlias)
		if err != nil {
			return err
		}
		o.session = d.manager
	}

	user, err := requireSession(context.Background(), o.session)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Nombre:\t%s\n", user.FullName())
	fmt.Fprintf(w, "Correo:\t%s\n", user.Email)
	fmt.Fprintf(w, "Tipo:\t%s\n", user.UserType)
	fmt.Fprintf(w, "Confirmado:\t%t\n", user.Confirmed)
	fmt.Fprintf(w, "Activo:\t%t\n", user.Active)
	fmt.Fprintf(w, "Configuración:\t%t\n", user.PermissionConfig)
	w.Flush()

	return nil
}

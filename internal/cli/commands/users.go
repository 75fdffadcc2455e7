package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/api"
	"github.com/detective-ambiental/detective/internal/session"
)

// usersClient is the slice of the stack the administrator-account
// commands use. Creation goes through the session service so payloads
// are validated before dispatch.
type usersClient interface {
	ListUsersAdmin(ctx context.Context) ([]api.User, error)
	DeactivateUserAdmin(ctx context.Context, id int) error
	ReactivateUserAdmin(ctx context.Context, id int) error
}

type userCreator interface {
	CreateUserAdmin(ctx context.Context, req api.CreateUserAdminRequest) error
}

type usersOptions struct {
	session  sessionState
	client   usersClient
	creator  userCreator
	out      io.Writer
	envAlias string
}

type usersOption func(*usersOptions)

func WithUsersSession(s sessionState) usersOption {
	return func(o *usersOptions) { o.session = s }
}

func WithUsersClient(c usersClient) usersOption {
	return func(o *usersOptions) { o.client = c }
}

func WithUsersCreator(c userCreator) usersOption {
	return func(o *usersOptions) { o.creator = c }
}

func WithUsersOutput(w io.Writer) usersOption {
	return func(o *usersOptions) { o.out = w }
}

func (o *usersOptions) resolve() error {
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.session == nil || o.client == nil || o.creator == nil {
		d, err := newDeps(o.envAlias)
		if err != nil {
			return err
		}
		if o.session == nil {
			o.session = d.manager
		}
		if o.client == nil {
			o.client = d.client
		}
		if o.creator == nil {
			o.creator = d.service
		}
	}
	return nil
}

// NewUsersCmd creates the administrator-accounts command group. All of
// it requires the configuration permission.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage administrator accounts",
	}

	var envAlias string
	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias")

	withEnv := func(o *usersOptions) { o.envAlias = envAlias }

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List administrator accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersList(withEnv)
		},
	})

	var firstname, lastname, email, password, fromFile string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create administrator accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				return runUsersCreateFromFile(fromFile, withEnv)
			}
			req := api.CreateUserAdminRequest{
				Firstname: firstname,
				Lastname:  lastname,
				Email:     email,
				Password:  password,
			}
			return runUsersCreate(req, withEnv)
		},
	}
	createCmd.Flags().StringVar(&firstname, "firstname", "", "First name")
	createCmd.Flags().StringVar(&lastname, "lastname", "", "Last name")
	createCmd.Flags().StringVar(&email, "email", "", "Email address")
	createCmd.Flags().StringVar(&password, "password", "", "Initial password")
	createCmd.Flags().StringVar(&fromFile, "from-file", "", "YAML file with accounts to create in bulk")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate an administrator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}
			return runUsersSetActive(id, false, withEnv)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reactivate <id>",
		Short: "Reactivate an administrator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}
			return runUsersSetActive(id, true, withEnv)
		},
	})

	return cmd
}

func runUsersList(opts ...usersOption) error {
	var o usersOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	users, err := o.client.ListUsersAdmin(context.Background())
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(o.out, "No hay usuarios administradores.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tCORREO\tCONFIRMADO\tACTIVO")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\n", u.ID, u.FullName(), u.Email, u.Confirmed, u.Active)
	}
	w.Flush()

	return nil
}

func runUsersCreate(req api.CreateUserAdminRequest, opts ...usersOption) error {
	var o usersOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	if err := o.creator.CreateUserAdmin(context.Background(), req); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Usuario administrador %s creado\n", req.Email)
	fmt.Fprintln(o.out, "  Recuerda que tiene que validar su correo electrónico.")
	return nil
}

func runUsersCreateFromFile(path string, opts ...usersOption) error {
	var o usersOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	users, err := session.LoadUserAdminsFile(path)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("no accounts found in %s", path)
	}

	for _, req := range users {
		if err := o.creator.CreateUserAdmin(context.Background(), req); err != nil {
			return fmt.Errorf("failed to create %s: %w", req.Email, err)
		}
		fmt.Fprintf(o.out, "✓ Usuario administrador %s creado\n", req.Email)
	}
	fmt.Fprintln(o.out, "  Recuerda que tienen que validar su correo electrónico.")

	return nil
}

func runUsersSetActive(id int, active bool, opts ...usersOption) error {
	var o usersOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	if active {
		if err := o.client.ReactivateUserAdmin(context.Background(), id); err != nil {
			return err
		}
		fmt.Fprintf(o.out, "✓ Usuario %d activado\n", id)
		return nil
	}

	if err := o.client.DeactivateUserAdmin(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintf(o.out, "✓ Usuario %d desactivado\n", id)
	return nil
}

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
)

// categoriesClient is the slice of the API client the category commands use.
type categoriesClient interface {
	ListCategories(ctx context.Context) ([]api.Category, error)
	AddCategory(ctx context.Context, name string) error
	UpdateCategory(ctx context.Context, id int, name string) error
	DeleteCategory(ctx context.Context, id int) error
}

type categoriesOptions struct {
	session  sessionState
	client   categoriesClient
	out      io.Writer
	envAlias string
}

type categoriesOption func(*categoriesOptions)

func WithCategoriesSession(s sessionState) categoriesOption {
	return func(o *categoriesOptions) { o.session = s }
}

func WithCategoriesClient(c categoriesClient) categoriesOption {
	return func(o *categoriesOptions) { o.client = c }
}

func WithCategoriesOutput(w io.Writer) categoriesOption {
	return func(o *categoriesOptions) { o.out = w }
}

func (o *categoriesOptions) resolve() error {
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.session == nil || o.client == nil {
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
	}
	return nil
}

// NewCategoriesCmd creates the categories command group. Everything but
// listing requires the configuration permission.
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage incident categories",
	}

	var envAlias string
	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias")

	withEnv := func(o *categoriesOptions) { o.envAlias = envAlias }

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesList(withEnv)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesAdd(args[0], withEnv)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id: %s", args[0])
			}
			return runCategoriesUpdate(id, args[1], withEnv)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id: %s", args[0])
			}
			return runCategoriesDelete(id, withEnv)
		},
	})

	return cmd
}

func runCategoriesList(opts ...categoriesOption) error {
	var o categoriesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	// Listing is public; the mobile app reads the same endpoint.
	categories, err := o.client.ListCategories(context.Background())
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(o.out, "No hay categorías.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORÍA")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Category)
	}
	w.Flush()

	return nil
}

func runCategoriesAdd(name string, opts ...categoriesOption) error {
	var o categoriesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	if err := o.client.AddCategory(context.Background(), name); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Categoría %q creada\n", name)
	return nil
}

func runCategoriesUpdate(id int, name string, opts ...categoriesOption) error {
	var o categoriesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	if err := o.client.UpdateCategory(context.Background(), id, name); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Categoría %d actualizada\n", id)
	return nil
}

func runCategoriesDelete(id int, opts ...categoriesOption) error {
	var o categoriesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireConfigPermission(context.Background(), o.session); err != nil {
		return err
	}

	if err := o.client.DeleteCategory(context.Background(), id); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Categoría %d eliminada\n", id)
	return nil
}

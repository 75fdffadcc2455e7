package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/detective-ambiental/detective/internal/api"
	"github.com/detective-ambiental/detective/internal/cli/userconfig"
	"github.com/detective-ambiental/detective/internal/logger"
	"github.com/detective-ambiental/detective/internal/reportcache"
)

// reportsClient is the slice of the API client the reports commands use.
type reportsClient interface {
	ListReports(ctx context.Context) ([]api.Report, error)
	GetReportByFolio(ctx context.Context, folio string) (*api.Report, error)
	UpdateReport(ctx context.Context, folio string, req api.UpdateReportRequest) error
	ReportsMap(ctx context.Context) ([]api.MapReport, error)
	CreateReview(ctx context.Context, req api.CreateReviewRequest) error
}

// reportStore is the local cache the listing commands sync into.
type reportStore interface {
	SyncReports(reports []api.Report) error
	SyncLocations(reports []api.MapReport) error
	List() ([]reportcache.CachedReport, error)
}

type reportsOptions struct {
	session  sessionState
	client   reportsClient
	cache    reportStore
	out      io.Writer
	envAlias string
}

type reportsOption func(*reportsOptions)

func WithReportsSession(s sessionState) reportsOption {
	return func(o *reportsOptions) { o.session = s }
}

func WithReportsClient(c reportsClient) reportsOption {
	return func(o *reportsOptions) { o.client = c }
}

func WithReportsCache(c reportStore) reportsOption {
	return func(o *reportsOptions) { o.cache = c }
}

func WithReportsOutput(w io.Writer) reportsOption {
	return func(o *reportsOptions) { o.out = w }
}

// resolve fills the production wiring for anything tests didn't inject.
func (o *reportsOptions) resolve() error {
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
	if o.cache == nil {
		path, err := userconfig.DataPath("reports.sqlite")
		if err != nil {
			return err
		}
		cache, err := reportcache.Open(path)
		if err != nil {
			return err
		}
		o.cache = cache
	}
	return nil
}

// NewReportsCmd creates the reports command group
func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage environmental-incident reports",
	}

	var envAlias string
	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias")

	var cached bool
	lsCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportsList(cached, func(o *reportsOptions) { o.envAlias = envAlias })
		},
	}
	lsCmd.Flags().BoolVar(&cached, "cached", false, "List from the local cache without contacting the backend")

	showCmd := &cobra.Command{
		Use:   "show <folio>",
		Short: "Show a report by folio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportsShow(args[0], func(o *reportsOptions) { o.envAlias = envAlias })
		},
	}

	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "List report locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportsMap(func(o *reportsOptions) { o.envAlias = envAlias })
		},
	}

	var idCategory, idStatus int
	updateCmd := &cobra.Command{
		Use:   "update <folio>",
		Short: "Update a report's category and status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportsUpdate(args[0], idCategory, idStatus, func(o *reportsOptions) { o.envAlias = envAlias })
		},
	}
	updateCmd.Flags().IntVar(&idCategory, "category", 0, "New category ID")
	updateCmd.Flags().IntVar(&idStatus, "status", 0, "New status ID")
	updateCmd.MarkFlagRequired("category")
	updateCmd.MarkFlagRequired("status")

	var notes string
	var images []string
	reviewCmd := &cobra.Command{
		Use:   "review <public-id>",
		Short: "Attach a review to a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportsReview(args[0], notes, images, func(o *reportsOptions) { o.envAlias = envAlias })
		},
	}
	reviewCmd.Flags().StringVar(&notes, "notes", "", "Review notes")
	reviewCmd.Flags().StringArrayVar(&images, "image", nil, "Image URL (repeatable)")
	reviewCmd.MarkFlagRequired("notes")

	cmd.AddCommand(lsCmd, showCmd, mapCmd, updateCmd, reviewCmd)
	return cmd
}

func runReportsList(cached bool, opts ...reportsOption) error {
	var o reportsOptions
	for _, opt := range opts {
		opt(&o)
	}

	if cached {
		if o.out == nil {
			o.out = os.Stdout
		}
		if o.cache == nil {
			if err := o.resolveCacheOnly(); err != nil {
				return err
			}
		}
		rows, err := o.cache.List()
		if err != nil {
			return err
		}
		return printCachedReports(o.out, rows)
	}

	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	reports, err := o.client.ListReports(context.Background())
	if err != nil {
		return err
	}

	if err := o.cache.SyncReports(reports); err != nil {
		log := logger.GetLogger()
		log.Warn().Err(err).Msg("failed to sync report cache")
	}

	if len(reports) == 0 {
		fmt.Fprintln(o.out, "No hay reportes.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOLIO\tTÍTULO\tFECHA\tCATEGORÍA\tESTADO\tCORREO")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Folio, r.Title, r.Date, r.Categories.Category, r.Status.Status, r.User.Email)
	}
	w.Flush()

	return nil
}

// resolveCacheOnly opens the cache without touching config or network,
// so --cached works offline and logged out.
func (o *reportsOptions) resolveCacheOnly() error {
	path, err := userconfig.DataPath("reports.sqlite")
	if err != nil {
		return err
	}
	cache, err := reportcache.Open(path)
	if err != nil {
		return err
	}
	o.cache = cache
	return nil
}

func printCachedReports(out io.Writer, rows []reportcache.CachedReport) error {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No hay reportes en el caché local.")
		fmt.Fprintln(out, "\nEjecuta 'detective reports ls' con conexión para llenarlo.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOLIO\tTÍTULO\tFECHA\tCATEGORÍA\tESTADO\tCORREO")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Folio, r.Title, r.Date, r.Category, r.Status, r.Email)
	}
	w.Flush()
	return nil
}

func runReportsShow(folio string, opts ...reportsOption) error {
	var o reportsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	report, err := o.client.GetReportByFolio(context.Background(), folio)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Folio:\t%s\n", report.Folio)
	fmt.Fprintf(w, "Título:\t%s\n", report.Title)
	fmt.Fprintf(w, "Fecha:\t%s\n", report.Date)
	fmt.Fprintf(w, "Categoría:\t%s\n", report.Categories.Category)
	fmt.Fprintf(w, "Estado:\t%s\n", report.Status.Status)
	fmt.Fprintf(w, "Reportado por:\t%s\n", report.User.Email)
	for _, img := range report.Images {
		fmt.Fprintf(w, "Imagen:\t%s\n", img.URLImage)
	}
	if report.Review != nil {
		fmt.Fprintf(w, "Revisión:\t%s (%s %s)\n",
			report.Review.Comment, report.Review.User.Firstname, report.Review.User.Lastname)
	}
	w.Flush()

	return nil
}

func runReportsMap(opts ...reportsOption) error {
	var o reportsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	reports, err := o.client.ReportsMap(context.Background())
	if err != nil {
		return err
	}

	if err := o.cache.SyncLocations(reports); err != nil {
		log := logger.GetLogger()
		log.Warn().Err(err).Msg("failed to sync report cache")
	}

	if len(reports) == 0 {
		fmt.Fprintln(o.out, "No hay reportes con ubicación.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOLIO\tTÍTULO\tCATEGORÍA\tLATITUD\tLONGITUD")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6f\t%.6f\n", r.Folio, r.Title, r.Category, r.Latitude, r.Longitude)
	}
	w.Flush()

	return nil
}

func runReportsUpdate(folio string, idCategory, idStatus int, opts ...reportsOption) error {
	var o reportsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	req := api.UpdateReportRequest{IDCategory: idCategory, IDStatus: idStatus}
	if err := o.client.UpdateReport(context.Background(), folio, req); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Reporte %s actualizado\n", folio)
	return nil
}

func runReportsReview(publicID, notes string, images []string, opts ...reportsOption) error {
	var o reportsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return err
	}

	if _, err := requireSession(context.Background(), o.session); err != nil {
		return err
	}

	req := api.CreateReviewRequest{
		PublicIDReport: publicID,
		ReviewNotes:    notes,
		Images:         images,
	}
	if err := o.client.CreateReview(context.Background(), req); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Revisión enviada")
	return nil
}

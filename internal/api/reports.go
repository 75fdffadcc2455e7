package api

import (
	"context"
	"net/http"
)

// ListReports returns all reports for the admin dashboard.
func (c *Client) ListReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := c.do(ctx, http.MethodGet, "/reports-admin", nil, &reports, true, "Error al cargar los reportes"); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReportByFolio returns a single report identified by its folio.
func (c *Client) GetReportByFolio(ctx context.Context, folio string) (*Report, error) {
	var report Report
	if err := c.do(ctx, http.MethodGet, "/reports-admin/"+folio, nil, &report, true, "Error al cargar el reporte"); err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReport changes the category and status of the report with the
// given folio.
func (c *Client) UpdateReport(ctx context.Context, folio string, req UpdateReportRequest) error {
	return c.do(ctx, http.MethodPatch, "/reports-admin/"+folio, req, nil, true, "Error al actualizar el reporte")
}

// ReportsMap returns the location projection of all reports.
func (c *Client) ReportsMap(ctx context.Context) ([]MapReport, error) {
	var reports []MapReport
	if err := c.do(ctx, http.MethodGet, "/reports-map", nil, &reports, true, "Error al cargar los reportes"); err != nil {
		return nil, err
	}
	return reports, nil
}

// CreateReview attaches an administrator review to a report.
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) error {
	return c.do(ctx, http.MethodPost, "/reviews", req, nil, true, "Error al enviar la revisión")
}

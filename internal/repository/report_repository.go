package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fims-api/internal/models"
)

// ReportListRow is a report joined with the reporter display name and the
// number of stored attachments.
type ReportListRow struct {
	models.Report
	ReportedByName  string `db:"reported_by_name"`
	AttachmentCount int    `db:"attachment_count"`
}

// ReportRepository provides persistence for anomaly reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// List returns one page of reports ordered by reporting time descending,
// optionally filtered by status and severity.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]ReportListRow, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT
	r.report_id,
	r.inspection_id,
	r.reported_by,
	r.issue_type,
	r.severity,
	r.status,
	r.description,
	r.gps_latitude,
	r.gps_longitude,
	r.work_order_number,
	r.reported_at,
	r.updated_at,
	u.full_name AS reported_by_name,
	(SELECT COUNT(1) FROM attachments a WHERE a.report_id = r.report_id) AS attachment_count
FROM reports r
JOIN users u ON u.user_id = r.reported_by
WHERE 1=1`)

	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND r.status = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		fmt.Fprintf(&query, " AND r.severity = $%d", len(args))
	}
	args = append(args, filter.PageSize)
	fmt.Fprintf(&query, "\nORDER BY r.reported_at DESC\nLIMIT $%d", len(args))
	args = append(args, (filter.Page-1)*filter.PageSize)
	fmt.Fprintf(&query, " OFFSET $%d", len(args))

	var rows []ReportListRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return rows, nil
}

// FindByID fetches one report. Returns sql.ErrNoRows when absent.
func (r *ReportRepository) FindByID(ctx context.Context, id int64) (*models.Report, error) {
	const query = `SELECT report_id, inspection_id, reported_by, issue_type, severity, status, description,
	gps_latitude, gps_longitude, work_order_number, reported_at, updated_at
FROM reports WHERE report_id = $1`

	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, err
	}
	return &report, nil
}

// Create inserts a new report and fills in the generated id.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	const query = `INSERT INTO reports
	(inspection_id, reported_by, issue_type, severity, status, description, gps_latitude, gps_longitude, work_order_number, reported_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING report_id`

	if err := r.db.GetContext(ctx, &report.ID, query,
		report.InspectionID,
		report.ReportedBy,
		report.IssueType,
		report.Severity,
		report.Status,
		report.Description,
		report.GPSLatitude,
		report.GPSLongitude,
		report.WorkOrderNumber,
		report.ReportedAt,
		report.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

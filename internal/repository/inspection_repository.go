package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fims-api/internal/models"
)

// InspectionListRow is an inspection joined with its assignee display name.
type InspectionListRow struct {
	models.Inspection
	AssignedToName string `db:"assigned_to_name"`
}

// InspectionDetailRow adds the creator name and report count for the detail view.
type InspectionDetailRow struct {
	models.Inspection
	AssignedToName string `db:"assigned_to_name"`
	CreatedByName  string `db:"created_by_name"`
	ReportCount    int    `db:"report_count"`
}

// InspectionRepository provides persistence for inspection tasks.
type InspectionRepository struct {
	db *sqlx.DB
}

// NewInspectionRepository constructs the repository.
func NewInspectionRepository(db *sqlx.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// List returns one page of inspections ordered by creation time descending,
// optionally filtered by status.
func (r *InspectionRepository) List(ctx context.Context, filter models.InspectionFilter) ([]InspectionListRow, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT
	i.inspection_id,
	i.task_code,
	i.location,
	i.location_description,
	i.assigned_to,
	i.created_by,
	i.status,
	i.due_date,
	i.completed_date,
	i.priority,
	i.description,
	i.frequency,
	i.created_at,
	i.updated_at,
	u.full_name AS assigned_to_name
FROM inspections i
JOIN users u ON u.user_id = i.assigned_to
WHERE 1=1`)

	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND i.status = $%d", len(args))
	}
	args = append(args, filter.PageSize)
	fmt.Fprintf(&query, "\nORDER BY i.created_at DESC\nLIMIT $%d", len(args))
	args = append(args, (filter.Page-1)*filter.PageSize)
	fmt.Fprintf(&query, " OFFSET $%d", len(args))

	var rows []InspectionListRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return rows, nil
}

// GetDetail fetches one inspection with display names and its report count.
// Returns nil when the id does not exist.
func (r *InspectionRepository) GetDetail(ctx context.Context, id int64) (*InspectionDetailRow, error) {
	const query = `
SELECT
	i.inspection_id,
	i.task_code,
	i.location,
	i.location_description,
	i.assigned_to,
	i.created_by,
	i.status,
	i.due_date,
	i.completed_date,
	i.priority,
	i.description,
	i.frequency,
	i.created_at,
	i.updated_at,
	ua.full_name AS assigned_to_name,
	uc.full_name AS created_by_name,
	(SELECT COUNT(1) FROM reports r WHERE r.inspection_id = i.inspection_id) AS report_count
FROM inspections i
JOIN users ua ON ua.user_id = i.assigned_to
JOIN users uc ON uc.user_id = i.created_by
WHERE i.inspection_id = $1`

	var row InspectionDetailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection detail: %w", err)
	}
	return &row, nil
}

// FindByID fetches the bare record. Returns sql.ErrNoRows when absent.
func (r *InspectionRepository) FindByID(ctx context.Context, id int64) (*models.Inspection, error) {
	const query = `SELECT inspection_id, task_code, location, location_description, assigned_to, created_by,
	status, due_date, completed_date, priority, description, frequency, created_at, updated_at
FROM inspections WHERE inspection_id = $1`

	var inspection models.Inspection
	if err := r.db.GetContext(ctx, &inspection, query, id); err != nil {
		return nil, err
	}
	return &inspection, nil
}

// Create inserts a new inspection and fills in the generated id.
func (r *InspectionRepository) Create(ctx context.Context, inspection *models.Inspection) error {
	const query = `INSERT INTO inspections
	(task_code, location, location_description, assigned_to, created_by, status, due_date, priority, description, frequency, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING inspection_id`

	if err := r.db.GetContext(ctx, &inspection.ID, query,
		inspection.TaskCode,
		inspection.Location,
		inspection.LocationDescription,
		inspection.AssignedTo,
		inspection.CreatedBy,
		inspection.Status,
		inspection.DueDate,
		inspection.Priority,
		inspection.Description,
		inspection.Frequency,
		inspection.CreatedAt,
		inspection.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an inspection.
func (r *InspectionRepository) Update(ctx context.Context, inspection *models.Inspection) error {
	const query = `UPDATE inspections SET
	location = $1,
	status = $2,
	priority = $3,
	description = $4,
	due_date = $5,
	completed_date = $6,
	updated_at = $7
WHERE inspection_id = $8`

	if _, err := r.db.ExecContext(ctx, query,
		inspection.Location,
		inspection.Status,
		inspection.Priority,
		inspection.Description,
		inspection.DueDate,
		inspection.CompletedDate,
		inspection.UpdatedAt,
		inspection.ID,
	); err != nil {
		return fmt.Errorf("update inspection: %w", err)
	}
	return nil
}

// Delete removes the inspection row.
func (r *InspectionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM inspections WHERE inspection_id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}
	return nil
}

// CountReports returns the number of reports referencing the inspection.
func (r *InspectionRepository) CountReports(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(1) FROM reports WHERE inspection_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count inspection reports: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/fims-api/internal/models"
)

// AttachmentRepository persists attachment metadata. Attachment rows are
// append-only.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository constructs the repository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create inserts a new attachment record and fills in the generated id.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	const query = `INSERT INTO attachments
	(report_id, file_name, file_path, file_type, file_size, uploaded_by, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING attachment_id`

	if err := r.db.GetContext(ctx, &attachment.ID, query,
		attachment.ReportID,
		attachment.FileName,
		attachment.FilePath,
		attachment.FileType,
		attachment.FileSize,
		attachment.UploadedBy,
		attachment.UploadedAt,
	); err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// ListByReport returns the attachments of one report, oldest first.
func (r *AttachmentRepository) ListByReport(ctx context.Context, reportID int64) ([]models.Attachment, error) {
	const query = `SELECT attachment_id, report_id, file_name, file_path, file_type, file_size, uploaded_by, uploaded_at
FROM attachments WHERE report_id = $1 ORDER BY uploaded_at ASC`

	var attachments []models.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, reportID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

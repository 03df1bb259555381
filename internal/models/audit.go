package models

import "time"

// AuditAction constants represent mutations to be traced.
const (
	AuditActionInspectionCreate = "INSPECTION_CREATE"
	AuditActionInspectionUpdate = "INSPECTION_UPDATE"
	AuditActionInspectionDelete = "INSPECTION_DELETE"
	AuditActionReportCreate     = "REPORT_CREATE"
	AuditActionAttachmentUpload = "ATTACHMENT_UPLOAD"
)

// AuditLog records who performed which mutation on which entity. Audit writes
// happen after the primary mutation and are best-effort: a failed write is
// logged but never reverses the mutation.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *int64    `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

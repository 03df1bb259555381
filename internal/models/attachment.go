package models

import "time"

// Attachment is a file artifact bound to exactly one report. Attachments are
// immutable once created.
type Attachment struct {
	ID         int64     `db:"attachment_id" json:"attachment_id"`
	ReportID   int64     `db:"report_id" json:"report_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	FilePath   string    `db:"file_path" json:"file_path"`
	FileType   string    `db:"file_type" json:"file_type"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	UploadedBy int64     `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

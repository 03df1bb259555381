package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/repository"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
)

const reportResource = "reports"

type reportStore interface {
	List(ctx context.Context, filter models.ReportFilter) ([]repository.ReportListRow, error)
	FindByID(ctx context.Context, id int64) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
}

type attachmentStore interface {
	Create(ctx context.Context, attachment *models.Attachment) error
}

type inspectionReader interface {
	FindByID(ctx context.Context, id int64) (*models.Inspection, error)
}

type attachmentFileStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// AttachmentUpload carries upload metadata and the content stream.
type AttachmentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ReportServiceConfig holds pagination bounds and the attachment policy.
type ReportServiceConfig struct {
	DefaultPageSize   int
	MaxPageSize       int
	MaxFileSize       int64
	AllowedExtensions []string
}

// ReportService owns anomaly report filing and attachment ingestion.
type ReportService struct {
	repo        reportStore
	attachments attachmentStore
	inspections inspectionReader
	storage     attachmentFileStorage
	audit       auditLogger
	notifier    taskNotifier
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
	cfg         ReportServiceConfig
	extSet      map[string]struct{}
}

// NewReportService builds a ReportService with sane defaults.
func NewReportService(
	repo reportStore,
	attachments attachmentStore,
	inspections inspectionReader,
	storage attachmentFileStorage,
	audit auditLogger,
	notifier taskNotifier,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ReportServiceConfig,
) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".doc", ".docx"}
	}
	extSet := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &ReportService{
		repo:        repo,
		attachments: attachments,
		inspections: inspections,
		storage:     storage,
		audit:       audit,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
		extSet:      extSet,
	}
}

// List returns one page of reports, newest first.
func (s *ReportService) List(ctx context.Context, filter models.ReportFilter) ([]dto.ReportListItem, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}

	items := make([]dto.ReportListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ReportListItem{
			ReportID:        row.ID,
			InspectionID:    row.InspectionID,
			ReportedByName:  row.ReportedByName,
			IssueType:       row.IssueType,
			Severity:        row.Severity,
			Status:          row.Status,
			Description:     row.Description,
			AttachmentCount: row.AttachmentCount,
			ReportedAt:      row.ReportedAt,
		})
	}
	return items, nil
}

// Create files a new anomaly report against an existing inspection. A missing
// inspection short-circuits before any write or notification.
func (s *ReportService) Create(ctx context.Context, req dto.CreateReportRequest, actor *models.JWTClaims) (*dto.CreatedReport, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}

	if _, err := s.inspections.FindByID(ctx, req.InspectionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "inspection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection")
	}

	now := s.now()
	severity := models.SeverityMedium
	if req.Severity != nil {
		severity = models.ReportSeverity(*req.Severity)
	}
	report := &models.Report{
		InspectionID:    req.InspectionID,
		ReportedBy:      actor.UserID,
		IssueType:       req.IssueType,
		Severity:        severity,
		Status:          models.ReportPending,
		Description:     req.Description,
		GPSLatitude:     req.GPSLatitude,
		GPSLongitude:    req.GPSLongitude,
		WorkOrderNumber: req.WorkOrderNumber,
		ReportedAt:      now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report")
	}

	s.emitAudit(ctx, actor.UserID, models.AuditActionReportCreate, report.ID, map[string]interface{}{
		"inspectionId": report.InspectionID,
		"issueType":    report.IssueType,
		"severity":     report.Severity,
	})
	if s.notifier != nil {
		s.notifier.NotifySupervisors(fmt.Sprintf("New anomaly report: %s (%s)", report.IssueType, report.Severity), report.ID)
	}

	return &dto.CreatedReport{
		ReportID:     report.ID,
		InspectionID: report.InspectionID,
		IssueType:    report.IssueType,
		Severity:     report.Severity,
		Status:       report.Status,
		Description:  report.Description,
		ReportedAt:   report.ReportedAt,
	}, nil
}

// UploadAttachment validates and stores one file against an existing report.
// Policy checks run before the report lookup; nothing is written unless every
// check passes.
func (s *ReportService) UploadAttachment(ctx context.Context, reportID int64, upload AttachmentUpload, actor *models.JWTClaims) (*dto.UploadAttachmentResponse, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if upload.Content == nil || upload.Size == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSize))
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, allowed := s.extSet[ext]; !allowed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported file format")
	}

	if _, err := s.repo.FindByID(ctx, reportID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}

	now := s.now()
	storedName := fmt.Sprintf("%d_%s_%s%s", reportID, now.Format("20060102150405"), shortSuffix(), ext)
	path, err := s.storage.SaveStream(storedName, upload.Content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	attachment := &models.Attachment{
		ReportID:   reportID,
		FileName:   upload.Filename,
		FilePath:   path,
		FileType:   ext,
		FileSize:   upload.Size,
		UploadedBy: actor.UserID,
		UploadedAt: now,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		_ = s.storage.Delete(path)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}

	s.emitAudit(ctx, actor.UserID, models.AuditActionAttachmentUpload, attachment.ID, map[string]interface{}{
		"reportId": reportID,
		"fileName": attachment.FileName,
		"fileSize": attachment.FileSize,
	})

	return &dto.UploadAttachmentResponse{
		Message:      "file uploaded",
		AttachmentID: attachment.ID,
		FileName:     attachment.FileName,
		FileSize:     attachment.FileSize,
	}, nil
}

func (s *ReportService) emitAudit(ctx context.Context, userID int64, action string, resourceID int64, payload map[string]interface{}) {
	if s.audit == nil {
		return
	}
	detail, _ := json.Marshal(payload)
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   reportResource,
		ResourceID: &resourceID,
		Detail:     detail,
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record report audit", zap.String("action", action), zap.Error(err))
	}
}

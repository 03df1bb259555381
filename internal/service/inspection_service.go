package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/repository"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
)

const inspectionResource = "inspections"

type inspectionStore interface {
	List(ctx context.Context, filter models.InspectionFilter) ([]repository.InspectionListRow, error)
	GetDetail(ctx context.Context, id int64) (*repository.InspectionDetailRow, error)
	FindByID(ctx context.Context, id int64) (*models.Inspection, error)
	Create(ctx context.Context, inspection *models.Inspection) error
	Update(ctx context.Context, inspection *models.Inspection) error
	Delete(ctx context.Context, id int64) error
	CountReports(ctx context.Context, id int64) (int, error)
}

type userReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// InspectionServiceConfig bounds list pagination.
type InspectionServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// InspectionService owns the inspection task lifecycle: validated creation,
// partial updates with completion stamping, and guarded deletion.
type InspectionService struct {
	repo      inspectionStore
	users     userReader
	audit     auditLogger
	notifier  taskNotifier
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       InspectionServiceConfig
}

// NewInspectionService builds an InspectionService with sane defaults.
func NewInspectionService(
	repo inspectionStore,
	users userReader,
	audit auditLogger,
	notifier taskNotifier,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg InspectionServiceConfig,
) *InspectionService {
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
	return &InspectionService{
		repo:      repo,
		users:     users,
		audit:     audit,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// List returns one page of inspection tasks, newest first.
func (s *InspectionService) List(ctx context.Context, filter models.InspectionFilter) ([]dto.InspectionListItem, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inspections")
	}

	now := s.now()
	items := make([]dto.InspectionListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.InspectionListItem{
			InspectionID:  row.ID,
			TaskCode:      row.TaskCode,
			Location:      row.Location,
			AssignedTo:    row.AssignedToName,
			Status:        row.Status,
			DueDate:       row.DueDate,
			DaysRemaining: daysUntil(now, row.DueDate),
			CreatedAt:     row.CreatedAt,
		})
	}
	return items, nil
}

// Get returns the full detail of one inspection task.
func (s *InspectionService) Get(ctx context.Context, id int64) (*dto.InspectionDetail, error) {
	row, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection")
	}
	if row == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "inspection not found")
	}

	return &dto.InspectionDetail{
		InspectionID:        row.ID,
		TaskCode:            row.TaskCode,
		Location:            row.Location,
		LocationDescription: row.LocationDescription,
		AssignedToName:      row.AssignedToName,
		CreatedByName:       row.CreatedByName,
		Status:              row.Status,
		DueDate:             row.DueDate,
		CompletedDate:       row.CompletedDate,
		Priority:            row.Priority,
		Description:         row.Description,
		ReportCount:         row.ReportCount,
		CreatedAt:           row.CreatedAt,
	}, nil
}

// Create schedules a new inspection task. The assignee must resolve to a
// stored user; validation failures short-circuit before any write.
func (s *InspectionService) Create(ctx context.Context, req dto.CreateInspectionRequest, actor *models.JWTClaims) (*dto.CreatedInspection, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inspection payload")
	}

	if _, err := s.users.FindByID(ctx, req.AssignedToUserID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "assigned user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assigned user")
	}

	now := s.now()
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.InspectionPriority(*req.Priority)
	}
	inspection := &models.Inspection{
		TaskCode:            generateTaskCode(now),
		Location:            req.Location,
		LocationDescription: req.LocationDescription,
		AssignedTo:          req.AssignedToUserID,
		CreatedBy:           actor.UserID,
		Status:              models.InspectionNotStarted,
		DueDate:             req.DueDate,
		Priority:            priority,
		Description:         req.Description,
		Frequency:           req.Frequency,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, inspection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inspection")
	}

	s.emitAudit(ctx, actor.UserID, models.AuditActionInspectionCreate, inspection.ID, map[string]interface{}{
		"taskCode":   inspection.TaskCode,
		"location":   inspection.Location,
		"assignedTo": inspection.AssignedTo,
	})
	if s.notifier != nil {
		s.notifier.NotifyUser(inspection.AssignedTo, fmt.Sprintf("New inspection task assigned: %s", inspection.TaskCode), inspection.ID)
	}

	return &dto.CreatedInspection{
		InspectionID: inspection.ID,
		TaskCode:     inspection.TaskCode,
		Location:     inspection.Location,
		Status:       inspection.Status,
		DueDate:      inspection.DueDate,
		CreatedAt:    inspection.CreatedAt,
	}, nil
}

// Update applies the supplied fields to an existing task. The first
// transition into Completed stamps CompletedDate; later updates that keep
// the status Completed leave the stamp untouched.
func (s *InspectionService) Update(ctx context.Context, id int64, req dto.UpdateInspectionRequest, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inspection payload")
	}

	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "inspection not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection")
	}

	now := s.now()
	if req.Status != nil {
		newStatus := models.InspectionStatus(*req.Status)
		if newStatus == models.InspectionCompleted && inspection.Status != models.InspectionCompleted {
			completed := now
			inspection.CompletedDate = &completed
		}
		inspection.Status = newStatus
	}
	if req.Location != nil {
		inspection.Location = *req.Location
	}
	if req.Priority != nil {
		inspection.Priority = models.InspectionPriority(*req.Priority)
	}
	if req.Description != nil {
		inspection.Description = req.Description
	}
	if req.DueDate != nil {
		inspection.DueDate = *req.DueDate
	}
	inspection.UpdatedAt = now

	if err := s.repo.Update(ctx, inspection); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update inspection")
	}

	s.emitAudit(ctx, actor.UserID, models.AuditActionInspectionUpdate, inspection.ID, map[string]interface{}{
		"taskCode": inspection.TaskCode,
		"status":   inspection.Status,
	})
	return nil
}

// Delete removes a task unless reports reference it.
func (s *InspectionService) Delete(ctx context.Context, id int64, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}

	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "inspection not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection")
	}

	reportCount, err := s.repo.CountReports(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check related reports")
	}
	if reportCount > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "cannot delete: inspection has related reports")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete inspection")
	}

	s.emitAudit(ctx, actor.UserID, models.AuditActionInspectionDelete, id, map[string]interface{}{
		"taskCode": inspection.TaskCode,
	})
	return nil
}

func (s *InspectionService) emitAudit(ctx context.Context, userID int64, action string, resourceID int64, payload map[string]interface{}) {
	if s.audit == nil {
		return
	}
	detail, _ := json.Marshal(payload)
	log := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   inspectionResource,
		ResourceID: &resourceID,
		Detail:     detail,
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record inspection audit", zap.String("action", action), zap.Error(err))
	}
}

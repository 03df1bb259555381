package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fims-api/internal/dto"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/repository"
	appErrors "github.com/noah-isme/fims-api/pkg/errors"
)

type fakeInspectionStore struct {
	listRows    []repository.InspectionListRow
	listFilter  models.InspectionFilter
	detail      *repository.InspectionDetailRow
	stored      *models.Inspection
	created     *models.Inspection
	updated     *models.Inspection
	deletedID   int64
	reportCount int
	findErr     error
}

func (f *fakeInspectionStore) List(_ context.Context, filter models.InspectionFilter) ([]repository.InspectionListRow, error) {
	f.listFilter = filter
	return f.listRows, nil
}

func (f *fakeInspectionStore) GetDetail(context.Context, int64) (*repository.InspectionDetailRow, error) {
	return f.detail, nil
}

func (f *fakeInspectionStore) FindByID(context.Context, int64) (*models.Inspection, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.stored, nil
}

func (f *fakeInspectionStore) Create(_ context.Context, inspection *models.Inspection) error {
	inspection.ID = 42
	f.created = inspection
	return nil
}

func (f *fakeInspectionStore) Update(_ context.Context, inspection *models.Inspection) error {
	f.updated = inspection
	return nil
}

func (f *fakeInspectionStore) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeInspectionStore) CountReports(context.Context, int64) (int, error) {
	return f.reportCount, nil
}

type fakeUserReader struct {
	user *models.User
	err  error
}

func (f *fakeUserReader) FindByID(context.Context, int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeAudit struct {
	logs []*models.AuditLog
	err  error
}

func (f *fakeAudit) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, log)
	return nil
}

type fakeNotifier struct {
	userMessages       []string
	supervisorMessages []string
}

func (f *fakeNotifier) NotifyUser(_ int64, message string, _ int64) {
	f.userMessages = append(f.userMessages, message)
}

func (f *fakeNotifier) NotifySupervisors(message string, _ int64) {
	f.supervisorMessages = append(f.supervisorMessages, message)
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: 1, Role: models.RoleAdmin, FullName: "Admin"}
}

func TestInspectionServiceCreate_SetsDefaultsAndNotifies(t *testing.T) {
	store := &fakeInspectionStore{}
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	svc := NewInspectionService(store, &fakeUserReader{user: &models.User{ID: 7, FullName: "Dana"}}, audit, notifier, nil, nil, InspectionServiceConfig{})
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.Create(context.Background(), dto.CreateInspectionRequest{
		Location:         "Building A / Boiler room",
		AssignedToUserID: 7,
		DueDate:          now.AddDate(0, 0, 3),
	}, adminClaims())
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.InspectionID)
	assert.Equal(t, models.InspectionNotStarted, created.Status)
	assert.True(t, strings.HasPrefix(created.TaskCode, "TASK-20250314093000-"))
	assert.Len(t, created.TaskCode, len("TASK-20250314093000-")+8)

	require.NotNil(t, store.created)
	assert.Nil(t, store.created.CompletedDate)
	assert.Equal(t, models.PriorityMedium, store.created.Priority)
	assert.Equal(t, int64(1), store.created.CreatedBy)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionInspectionCreate, audit.logs[0].Action)
	require.Len(t, notifier.userMessages, 1)
	assert.Contains(t, notifier.userMessages[0], created.TaskCode)
}

func TestInspectionServiceCreate_UniqueTaskCodesSameInstant(t *testing.T) {
	store := &fakeInspectionStore{}
	svc := NewInspectionService(store, &fakeUserReader{user: &models.User{ID: 7}}, nil, nil, nil, nil, InspectionServiceConfig{})
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	req := dto.CreateInspectionRequest{Location: "Dock 4", AssignedToUserID: 7, DueDate: now.AddDate(0, 0, 1)}
	first, err := svc.Create(context.Background(), req, adminClaims())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), req, adminClaims())
	require.NoError(t, err)

	assert.NotEqual(t, first.TaskCode, second.TaskCode)
}

func TestInspectionServiceCreate_UnknownAssigneeShortCircuits(t *testing.T) {
	store := &fakeInspectionStore{}
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	svc := NewInspectionService(store, &fakeUserReader{err: sql.ErrNoRows}, audit, notifier, nil, nil, InspectionServiceConfig{})

	_, err := svc.Create(context.Background(), dto.CreateInspectionRequest{
		Location:         "Dock 4",
		AssignedToUserID: 99,
		DueDate:          time.Now().AddDate(0, 0, 1),
	}, adminClaims())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Nil(t, store.created)
	assert.Empty(t, audit.logs)
	assert.Empty(t, notifier.userMessages)
}

func TestInspectionServiceUpdate_StampsCompletionOnce(t *testing.T) {
	now := time.Date(2025, 3, 20, 15, 0, 0, 0, time.UTC)
	store := &fakeInspectionStore{stored: &models.Inspection{
		ID:       5,
		TaskCode: "TASK-20250301080000-ab12cd34",
		Status:   models.InspectionInProgress,
		DueDate:  now.AddDate(0, 0, 1),
	}}
	svc := NewInspectionService(store, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{})
	svc.now = func() time.Time { return now }

	completed := string(models.InspectionCompleted)
	require.NoError(t, svc.Update(context.Background(), 5, dto.UpdateInspectionRequest{Status: &completed}, adminClaims()))
	require.NotNil(t, store.updated.CompletedDate)
	assert.Equal(t, now, *store.updated.CompletedDate)

	firstStamp := *store.updated.CompletedDate
	later := now.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }
	store.stored = store.updated

	desc := "rechecked"
	require.NoError(t, svc.Update(context.Background(), 5, dto.UpdateInspectionRequest{Status: &completed, Description: &desc}, adminClaims()))
	require.NotNil(t, store.updated.CompletedDate)
	assert.Equal(t, firstStamp, *store.updated.CompletedDate)
	assert.Equal(t, later, store.updated.UpdatedAt)
}

func TestInspectionServiceUpdate_NotFound(t *testing.T) {
	store := &fakeInspectionStore{findErr: sql.ErrNoRows}
	svc := NewInspectionService(store, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{})

	err := svc.Update(context.Background(), 404, dto.UpdateInspectionRequest{}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
	assert.Nil(t, store.updated)
}

func TestInspectionServiceDelete_BlockedByReports(t *testing.T) {
	store := &fakeInspectionStore{
		stored:      &models.Inspection{ID: 5, TaskCode: "TASK-20250301080000-ab12cd34"},
		reportCount: 2,
	}
	svc := NewInspectionService(store, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{})

	err := svc.Delete(context.Background(), 5, adminClaims())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Zero(t, store.deletedID)
}

func TestInspectionServiceDelete_RemovesWhenUnreferenced(t *testing.T) {
	store := &fakeInspectionStore{stored: &models.Inspection{ID: 5, TaskCode: "TASK-20250301080000-ab12cd34"}}
	audit := &fakeAudit{}
	svc := NewInspectionService(store, &fakeUserReader{}, audit, nil, nil, nil, InspectionServiceConfig{})

	require.NoError(t, svc.Delete(context.Background(), 5, adminClaims()))
	assert.Equal(t, int64(5), store.deletedID)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionInspectionDelete, audit.logs[0].Action)
}

func TestInspectionServiceDelete_SurvivesAuditFailure(t *testing.T) {
	store := &fakeInspectionStore{stored: &models.Inspection{ID: 5}}
	svc := NewInspectionService(store, &fakeUserReader{}, &fakeAudit{err: assert.AnError}, nil, nil, nil, InspectionServiceConfig{})

	require.NoError(t, svc.Delete(context.Background(), 5, adminClaims()))
	assert.Equal(t, int64(5), store.deletedID)
}

func TestInspectionServiceList_ClampsPageSize(t *testing.T) {
	store := &fakeInspectionStore{}
	svc := NewInspectionService(store, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{DefaultPageSize: 10, MaxPageSize: 100})

	_, err := svc.List(context.Background(), models.InspectionFilter{Page: 0, PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, store.listFilter.Page)
	assert.Equal(t, 100, store.listFilter.PageSize)

	_, err = svc.List(context.Background(), models.InspectionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 10, store.listFilter.PageSize)
}

func TestInspectionServiceList_ComputesDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 50, 0, 0, time.UTC)
	store := &fakeInspectionStore{listRows: []repository.InspectionListRow{
		{Inspection: models.Inspection{ID: 1, DueDate: time.Date(2025, 3, 17, 0, 10, 0, 0, time.UTC)}, AssignedToName: "Dana"},
		{Inspection: models.Inspection{ID: 2, DueDate: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)}, AssignedToName: "Lee"},
	}}
	svc := NewInspectionService(store, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{})
	svc.now = func() time.Time { return now }

	items, err := svc.List(context.Background(), models.InspectionFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].DaysRemaining)
	assert.Equal(t, -2, items[1].DaysRemaining)
}

func TestInspectionServiceGet_NotFound(t *testing.T) {
	svc := NewInspectionService(&fakeInspectionStore{}, &fakeUserReader{}, nil, nil, nil, nil, InspectionServiceConfig{})

	_, err := svc.Get(context.Background(), 123)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

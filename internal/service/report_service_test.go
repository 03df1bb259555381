package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
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

type fakeReportStore struct {
	listRows   []repository.ReportListRow
	listFilter models.ReportFilter
	stored     *models.Report
	created    *models.Report
	findErr    error
}

func (f *fakeReportStore) List(_ context.Context, filter models.ReportFilter) ([]repository.ReportListRow, error) {
	f.listFilter = filter
	return f.listRows, nil
}

func (f *fakeReportStore) FindByID(context.Context, int64) (*models.Report, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.stored, nil
}

func (f *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	report.ID = 17
	f.created = report
	return nil
}

type fakeAttachmentStore struct {
	created *models.Attachment
	err     error
}

func (f *fakeAttachmentStore) Create(_ context.Context, attachment *models.Attachment) error {
	if f.err != nil {
		return f.err
	}
	attachment.ID = 9
	f.created = attachment
	return nil
}

type fakeInspectionReader struct {
	inspection *models.Inspection
	err        error
}

func (f *fakeInspectionReader) FindByID(context.Context, int64) (*models.Inspection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inspection, nil
}

type fakeFileStorage struct {
	savedName string
	savedData []byte
	deleted   []string
	saveErr   error
}

func (f *fakeFileStorage) SaveStream(filename string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.savedName = filename
	f.savedData = data
	return "/uploads/" + filename, nil
}

func (f *fakeFileStorage) Delete(filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func inspectorClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: 3, Role: models.RoleInspector, FullName: "Iris"}
}

func newReportService(repo *fakeReportStore, attachments *fakeAttachmentStore, inspections *fakeInspectionReader, storage *fakeFileStorage) *ReportService {
	return NewReportService(repo, attachments, inspections, storage, nil, nil, nil, nil, ReportServiceConfig{})
}

func TestReportServiceCreate_DefaultsAndNotification(t *testing.T) {
	repo := &fakeReportStore{}
	notifier := &fakeNotifier{}
	svc := NewReportService(repo, &fakeAttachmentStore{}, &fakeInspectionReader{inspection: &models.Inspection{ID: 5}}, &fakeFileStorage{}, nil, notifier, nil, nil, ReportServiceConfig{})
	now := time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.Create(context.Background(), dto.CreateReportRequest{
		InspectionID: 5,
		IssueType:    "Water leak",
		Description:  "Dripping pipe under sink",
	}, inspectorClaims())
	require.NoError(t, err)

	assert.Equal(t, int64(17), created.ReportID)
	assert.Equal(t, models.SeverityMedium, created.Severity)
	assert.Equal(t, models.ReportPending, created.Status)
	assert.Equal(t, now, created.ReportedAt)
	assert.Equal(t, int64(3), repo.created.ReportedBy)

	require.Len(t, notifier.supervisorMessages, 1)
	assert.Contains(t, notifier.supervisorMessages[0], "Water leak")
}

func TestReportServiceCreate_MissingInspectionHasNoSideEffects(t *testing.T) {
	repo := &fakeReportStore{}
	notifier := &fakeNotifier{}
	svc := NewReportService(repo, &fakeAttachmentStore{}, &fakeInspectionReader{err: sql.ErrNoRows}, &fakeFileStorage{}, nil, notifier, nil, nil, ReportServiceConfig{})

	_, err := svc.Create(context.Background(), dto.CreateReportRequest{
		InspectionID: 999,
		IssueType:    "Water leak",
		Description:  "Dripping pipe",
	}, inspectorClaims())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "inspection not found")
	assert.Nil(t, repo.created)
	assert.Empty(t, notifier.supervisorMessages)
}

func TestReportServiceCreate_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc := newReportService(&fakeReportStore{}, &fakeAttachmentStore{}, &fakeInspectionReader{inspection: &models.Inspection{ID: 5}}, &fakeFileStorage{})

	lat := 91.0
	_, err := svc.Create(context.Background(), dto.CreateReportRequest{
		InspectionID: 5,
		IssueType:    "Crack",
		Description:  "Wall crack",
		GPSLatitude:  &lat,
	}, inspectorClaims())

	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestReportServiceUploadAttachment_PolicyMatrix(t *testing.T) {
	cases := []struct {
		name    string
		upload  AttachmentUpload
		message string
	}{
		{
			name:    "empty file",
			upload:  AttachmentUpload{Filename: "photo.jpg", Size: 0, Content: bytes.NewReader(nil)},
			message: "file is empty",
		},
		{
			name:    "over the size cap",
			upload:  AttachmentUpload{Filename: "scan.pdf", Size: 10*1024*1024 + 1, Content: bytes.NewReader([]byte("x"))},
			message: "byte limit",
		},
		{
			name:    "blocked extension",
			upload:  AttachmentUpload{Filename: "tool.exe", Size: 128, Content: bytes.NewReader([]byte("x"))},
			message: "unsupported file format",
		},
		{
			name:    "extension hidden behind a valid-looking name",
			upload:  AttachmentUpload{Filename: "report.pdf.sh", Size: 128, Content: bytes.NewReader([]byte("x"))},
			message: "unsupported file format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeReportStore{stored: &models.Report{ID: 4}}
			storage := &fakeFileStorage{}
			attachments := &fakeAttachmentStore{}
			svc := newReportService(repo, attachments, &fakeInspectionReader{}, storage)

			_, err := svc.UploadAttachment(context.Background(), 4, tc.upload, inspectorClaims())
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, 400, appErr.Status)
			assert.Contains(t, appErr.Message, tc.message)
			assert.Empty(t, storage.savedName)
			assert.Nil(t, attachments.created)
		})
	}
}

func TestReportServiceUploadAttachment_StoresFile(t *testing.T) {
	repo := &fakeReportStore{stored: &models.Report{ID: 4}}
	storage := &fakeFileStorage{}
	attachments := &fakeAttachmentStore{}
	svc := newReportService(repo, attachments, &fakeInspectionReader{}, storage)
	now := time.Date(2025, 4, 2, 8, 15, 30, 0, time.UTC)
	svc.now = func() time.Time { return now }

	content := []byte("%PDF-1.4 fake")
	res, err := svc.UploadAttachment(context.Background(), 4, AttachmentUpload{
		Filename: "Boiler Scan.PDF",
		Size:     int64(len(content)),
		Content:  bytes.NewReader(content),
	}, inspectorClaims())
	require.NoError(t, err)

	assert.Equal(t, int64(9), res.AttachmentID)
	assert.Equal(t, "Boiler Scan.PDF", res.FileName)
	assert.Equal(t, int64(len(content)), res.FileSize)

	assert.True(t, strings.HasPrefix(storage.savedName, "4_20250402081530_"))
	assert.True(t, strings.HasSuffix(storage.savedName, ".pdf"))
	assert.Equal(t, content, storage.savedData)

	require.NotNil(t, attachments.created)
	assert.Equal(t, "Boiler Scan.PDF", attachments.created.FileName)
	assert.Equal(t, ".pdf", attachments.created.FileType)
	assert.Equal(t, int64(3), attachments.created.UploadedBy)
}

func TestReportServiceUploadAttachment_MissingReport(t *testing.T) {
	repo := &fakeReportStore{findErr: sql.ErrNoRows}
	storage := &fakeFileStorage{}
	svc := newReportService(repo, &fakeAttachmentStore{}, &fakeInspectionReader{}, storage)

	_, err := svc.UploadAttachment(context.Background(), 404, AttachmentUpload{
		Filename: "photo.jpg",
		Size:     64,
		Content:  bytes.NewReader([]byte("jpeg")),
	}, inspectorClaims())

	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
	assert.Empty(t, storage.savedName)
}

func TestReportServiceUploadAttachment_RollsBackFileOnMetadataFailure(t *testing.T) {
	repo := &fakeReportStore{stored: &models.Report{ID: 4}}
	storage := &fakeFileStorage{}
	attachments := &fakeAttachmentStore{err: assert.AnError}
	svc := newReportService(repo, attachments, &fakeInspectionReader{}, storage)

	_, err := svc.UploadAttachment(context.Background(), 4, AttachmentUpload{
		Filename: "photo.jpg",
		Size:     64,
		Content:  bytes.NewReader([]byte("jpeg")),
	}, inspectorClaims())

	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
	require.Len(t, storage.deleted, 1)
	assert.Equal(t, "/uploads/"+storage.savedName, storage.deleted[0])
}

func TestReportServiceList_PassesFiltersThrough(t *testing.T) {
	repo := &fakeReportStore{listRows: []repository.ReportListRow{
		{Report: models.Report{ID: 1, IssueType: "Crack"}, ReportedByName: "Iris", AttachmentCount: 2},
	}}
	svc := newReportService(repo, &fakeAttachmentStore{}, &fakeInspectionReader{}, &fakeFileStorage{})

	items, err := svc.List(context.Background(), models.ReportFilter{Status: "Pending", Severity: "High", Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Iris", items[0].ReportedByName)
	assert.Equal(t, 2, items[0].AttachmentCount)
	assert.Equal(t, "Pending", repo.listFilter.Status)
	assert.Equal(t, "High", repo.listFilter.Severity)
	assert.Equal(t, 2, repo.listFilter.Page)
}

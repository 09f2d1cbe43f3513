package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/internal/cms/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReconciler(t *testing.T) (*ReconcileServiceImpl, *mocks.MockBlobStore, *mocks.MockRecordIndex) {
	t.Helper()
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	index := mocks.NewMockRecordIndex(ctrl)

	cfg := config.DefaultConfig()
	cfg.Reconcile.Workers = 2
	cfg.Reconcile.GracePeriodMS = int(time.Minute / time.Millisecond)

	svc := NewReconcileService(cfg, blobs, index)
	svc.now = func() time.Time { return fixedNow }
	return svc, blobs, index
}

func old() time.Time {
	return fixedNow.Add(-time.Hour)
}

func TestReconcileService_RemovesDrift(t *testing.T) {
	svc, blobs, index := newTestReconciler(t)

	index.EXPECT().List(gomock.Any()).Return([]domain.MediaRecord{
		{Filename: "1-kept.png", Category: domain.CategorySocial, UploadedAt: old()},
		{Filename: "2-dangling.png", Category: domain.CategorySocial, UploadedAt: old()},
		{Filename: "3-fresh.png", Category: domain.CategoryInstitution, UploadedAt: fixedNow},
	}, nil)

	blobs.EXPECT().List(gomock.Any(), domain.CategorySocial).Return([]port.BlobInfo{
		{Name: "1-kept.png", ModTime: old()},
		{Name: "9-orphan.png", ModTime: old()},
		{Name: "10-inflight.png", ModTime: fixedNow.Add(-time.Second)},
	}, nil)
	blobs.EXPECT().List(gomock.Any(), domain.CategoryInstitution).Return(nil, nil)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategorySocial).Return(nil, nil)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategoryInstitution).Return(nil, nil)

	blobs.EXPECT().Delete(gomock.Any(), domain.CategorySocial, "9-orphan.png").Return(nil)
	index.EXPECT().Delete(gomock.Any(), domain.CategorySocial, "2-dangling.png").Return(nil)

	report, err := svc.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, report.DryRun)
	assert.Equal(t, []string{"social/9-orphan.png"}, report.OrphanFiles)
	assert.Equal(t, []string{"social/2-dangling.png"}, report.DanglingRecords)
	assert.Empty(t, report.Errors)
}

func TestReconcileService_DryRunRemovesNothing(t *testing.T) {
	svc, blobs, index := newTestReconciler(t)

	index.EXPECT().List(gomock.Any()).Return([]domain.MediaRecord{
		{Filename: "2-dangling.png", Category: domain.CategoryInstitution, UploadedAt: old()},
	}, nil)
	blobs.EXPECT().List(gomock.Any(), domain.CategorySocial).Return([]port.BlobInfo{
		{Name: "9-orphan.png", ModTime: old()},
	}, nil)
	blobs.EXPECT().List(gomock.Any(), domain.CategoryInstitution).Return(nil, nil)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategorySocial).Return(nil, nil)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategoryInstitution).Return([]port.BlobInfo{
		{Name: ".upload-42", ModTime: old()},
	}, nil)

	report, err := svc.Reconcile(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"social/9-orphan.png"}, report.OrphanFiles)
	assert.Equal(t, []string{"institution/2-dangling.png"}, report.DanglingRecords)
	assert.Equal(t, []string{"institution/.upload-42"}, report.PartialUploads)
}

func TestReconcileService_CollectsErrors(t *testing.T) {
	svc, blobs, index := newTestReconciler(t)

	index.EXPECT().List(gomock.Any()).Return(nil, nil)
	blobs.EXPECT().List(gomock.Any(), domain.CategorySocial).Return(nil, errors.New("permission denied"))
	blobs.EXPECT().List(gomock.Any(), domain.CategoryInstitution).Return([]port.BlobInfo{
		{Name: "9-orphan.png", ModTime: old()},
	}, nil)
	blobs.EXPECT().Delete(gomock.Any(), domain.CategoryInstitution, "9-orphan.png").Return(errors.New("busy"))
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategoryInstitution).Return(nil, nil)

	report, err := svc.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, report.Errors, 2)
	assert.Empty(t, report.OrphanFiles)
}

func TestReconcileService_IndexFailure(t *testing.T) {
	svc, _, index := newTestReconciler(t)
	index.EXPECT().List(gomock.Any()).Return(nil, errors.New("down"))

	_, err := svc.Reconcile(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestReconcileService_SweepsStalePartialUploads(t *testing.T) {
	svc, blobs, index := newTestReconciler(t)

	index.EXPECT().List(gomock.Any()).Return(nil, nil)
	blobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategorySocial).Return([]port.BlobInfo{
		{Name: ".upload-crashed", ModTime: old()},
		{Name: ".upload-streaming", ModTime: fixedNow.Add(-time.Second)},
	}, nil)
	blobs.EXPECT().ListPartial(gomock.Any(), domain.CategoryInstitution).Return([]port.BlobInfo{
		{Name: ".upload-gone", ModTime: old()},
		{Name: ".upload-locked", ModTime: old()},
	}, nil)

	blobs.EXPECT().RemovePartial(gomock.Any(), domain.CategorySocial, ".upload-crashed").Return(nil)
	blobs.EXPECT().RemovePartial(gomock.Any(), domain.CategoryInstitution, ".upload-gone").Return(domain.ErrNotFound)
	blobs.EXPECT().RemovePartial(gomock.Any(), domain.CategoryInstitution, ".upload-locked").Return(errors.New("permission denied"))

	report, err := svc.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"social/.upload-crashed", "institution/.upload-gone"}, report.PartialUploads)
	assert.Empty(t, report.OrphanFiles)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "institution/.upload-locked")
}

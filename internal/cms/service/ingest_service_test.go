package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type recordingObserver struct {
	operations []string
	errs       []error
	uploaded   map[string]int64
}

func (o *recordingObserver) ObserveOperation(operation string, _ time.Duration, err error) {
	o.operations = append(o.operations, operation)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) ObserveUploadBytes(category string, size int64) {
	if o.uploaded == nil {
		o.uploaded = make(map[string]int64)
	}
	o.uploaded[category] += size
}

func newTestMediaService(t *testing.T) (*MediaServiceImpl, *mocks.MockBlobStore, *mocks.MockRecordIndex, *mocks.MockIDGenerator, *recordingObserver) {
	t.Helper()
	ctrl := gomock.NewController(t)

	blobs := mocks.NewMockBlobStore(ctrl)
	index := mocks.NewMockRecordIndex(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	observer := &recordingObserver{}

	cfg := config.DefaultConfig()
	svc := NewMediaService(cfg, blobs, index, idGen, observer)
	svc.now = func() time.Time { return fixedNow }
	return svc, blobs, index, idGen, observer
}

func TestIngestService_Ingest(t *testing.T) {
	type mockSetup func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator)

	tests := []struct {
		name         string
		category     string
		originalName string
		reader       io.Reader
		setup        mockSetup
		wantErr      error
		wantName     string
	}{
		{
			name:         "Success",
			category:     "social",
			originalName: "My Photo.PNG",
			reader:       bytes.NewReader([]byte("png-bytes")),
			setup: func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Next().Return(int64(12345), nil)
				blobs.EXPECT().
					Put(gomock.Any(), domain.CategorySocial, "12345-My-Photo.PNG", gomock.Any()).
					Return(int64(9), uint32(77), nil)
				index.EXPECT().
					Insert(gomock.Any(), domain.MediaRecord{
						Filename:   "12345-My-Photo.PNG",
						URL:        "http://localhost:5000/uploads/social/12345-My-Photo.PNG",
						Category:   domain.CategorySocial,
						UploadedAt: fixedNow,
						Size:       9,
						Checksum:   77,
					}).
					Return(nil)
			},
			wantName: "12345-My-Photo.PNG",
		},
		{
			name:         "InvalidCategory",
			category:     "news",
			originalName: "a.png",
			reader:       bytes.NewReader(nil),
			wantErr:      domain.ErrInvalidCategory,
		},
		{
			name:         "MissingCategory",
			category:     "",
			originalName: "a.png",
			reader:       bytes.NewReader(nil),
			wantErr:      domain.ErrValidation,
		},
		{
			name:         "UnsupportedExtension",
			category:     "institution",
			originalName: "report.pdf",
			reader:       bytes.NewReader(nil),
			wantErr:      domain.ErrUnsupportedFileType,
		},
		{
			name:         "MissingFile",
			category:     "institution",
			originalName: "",
			reader:       nil,
			wantErr:      domain.ErrMissingFile,
		},
		{
			name:         "IDGeneratorFailure",
			category:     "social",
			originalName: "a.jpg",
			reader:       bytes.NewReader(nil),
			setup: func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Next().Return(int64(0), errors.New("clock moved backwards"))
			},
			wantErr: domain.ErrStorage,
		},
		{
			name:         "WriteFailure",
			category:     "social",
			originalName: "a.jpg",
			reader:       bytes.NewReader([]byte("x")),
			setup: func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Next().Return(int64(1), nil)
				blobs.EXPECT().Put(gomock.Any(), domain.CategorySocial, "1-a.jpg", gomock.Any()).
					Return(int64(0), uint32(0), errors.New("disk full"))
			},
			wantErr: domain.ErrStorage,
		},
		{
			name:         "IndexFailureRollsBackFile",
			category:     "social",
			originalName: "a.jpg",
			reader:       bytes.NewReader([]byte("x")),
			setup: func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Next().Return(int64(1), nil)
				blobs.EXPECT().Put(gomock.Any(), domain.CategorySocial, "1-a.jpg", gomock.Any()).
					Return(int64(1), uint32(1), nil)
				index.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				blobs.EXPECT().Delete(gomock.Any(), domain.CategorySocial, "1-a.jpg").Return(nil)
			},
			wantErr: domain.ErrPersistence,
		},
		{
			name:         "RollbackFailureStillReportsIndexError",
			category:     "institution",
			originalName: "a.jpeg",
			reader:       bytes.NewReader([]byte("x")),
			setup: func(blobs *mocks.MockBlobStore, index *mocks.MockRecordIndex, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Next().Return(int64(2), nil)
				blobs.EXPECT().Put(gomock.Any(), domain.CategoryInstitution, "2-a.jpeg", gomock.Any()).
					Return(int64(1), uint32(1), nil)
				index.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateRecord)
				blobs.EXPECT().Delete(gomock.Any(), domain.CategoryInstitution, "2-a.jpeg").Return(errors.New("permission denied"))
			},
			wantErr: domain.ErrDuplicateRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, blobs, index, idGen, _ := newTestMediaService(t)
			if tt.setup != nil {
				tt.setup(blobs, index, idGen)
			}

			record, err := svc.Ingest(context.Background(), tt.category, tt.originalName, tt.reader)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, record.Filename)
			assert.Equal(t, fixedNow, record.UploadedAt)
		})
	}
}

func TestIngestService_ReaderValidationErrorPassesThrough(t *testing.T) {
	svc, blobs, _, idGen, _ := newTestMediaService(t)
	tooLarge := fmt.Errorf("%w: file exceeds the upload size limit", domain.ErrValidation)

	idGen.EXPECT().Next().Return(int64(1), nil)
	blobs.EXPECT().Put(gomock.Any(), domain.CategorySocial, "1-big.png", gomock.Any()).
		Return(int64(0), uint32(0), tooLarge)

	record, err := svc.Ingest(context.Background(), "social", "big.png", bytes.NewReader([]byte("x")))
	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, "validation error: file exceeds the upload size limit", err.Error())
}

func TestIngestService_ValidationWritesNothing(t *testing.T) {
	// no expectations: any call on the mocks fails the test
	svc, _, _, _, observer := newTestMediaService(t)

	_, err := svc.Ingest(context.Background(), "social", "script.sh", bytes.NewReader([]byte("#!")))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"ingest"}, observer.operations)
	assert.Empty(t, observer.uploaded)
}

func TestIngestService_ObservesUploadBytes(t *testing.T) {
	svc, blobs, index, idGen, observer := newTestMediaService(t)
	idGen.EXPECT().Next().Return(int64(5), nil)
	blobs.EXPECT().Put(gomock.Any(), domain.CategoryInstitution, "5-logo.png", gomock.Any()).Return(int64(2048), uint32(3), nil)
	index.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Ingest(context.Background(), "institution", "logo.png", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, int64(2048), observer.uploaded["institution"])
	assert.Equal(t, []error{nil}, observer.errs)
}

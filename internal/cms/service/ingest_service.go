package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/dependencies_mock.go -package=mocks -source=ingest_service.go

// IDGenerator defines ID generation capability.
type IDGenerator interface {
	Next() (int64, error)
	NextString() (string, error)
}

const rollbackTimeout = 30 * time.Second

// ingestService validates uploads, stores the file and indexes it.
type ingestService struct {
	core  *MediaServiceImpl
	idGen IDGenerator
}

// newIngestService creates the ingest use-case service.
func newIngestService(core *MediaServiceImpl, idGen IDGenerator) *ingestService {
	return &ingestService{core: core, idGen: idGen}
}

// ingest runs validate, store, index. A failed index write removes the stored file again.
func (s *ingestService) ingest(ctx context.Context, rawCategory string, originalName string, reader io.Reader) (*domain.MediaRecord, error) {
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	if reader == nil || strings.TrimSpace(originalName) == "" {
		return nil, domain.ErrMissingFile
	}
	if !domain.IsAllowedExtension(originalName) {
		return nil, domain.ErrUnsupportedFileType
	}

	id, err := s.idGen.Next()
	if err != nil {
		return nil, domain.StorageError("generate snowflake id", err)
	}
	filename := domain.BuildStoredName(id, originalName)

	logger.Infow("Upload started", "category", category, "filename", filename, "original_name", originalName)

	size, checksum, err := s.core.blobs.Put(ctx, category, filename, reader)
	if err != nil {
		logger.Errorw("Upload write failed", "category", category, "filename", filename, "error", err.Error())
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, domain.StorageError("write file", err)
	}

	record := domain.MediaRecord{
		Filename:   filename,
		URL:        domain.BuildPublicURL(s.core.publicBaseURL(), category, filename),
		Category:   category,
		UploadedAt: s.core.now().UTC(),
		Size:       size,
		Checksum:   checksum,
	}

	if err := s.core.index.Insert(ctx, record); err != nil {
		logger.Errorw("Index insert failed", "category", category, "filename", filename, "error", err.Error())
		s.rollback(ctx, category, filename)
		return nil, domain.PersistenceError("insert record", err)
	}

	s.core.observer.ObserveUploadBytes(string(category), size)
	logger.Infow("Upload completed", "category", category, "filename", filename, "size_bytes", size)
	return &record, nil
}

// rollback deletes a file whose record could not be written. A failure leaves
// an orphan that the reconciler removes later.
func (s *ingestService) rollback(ctx context.Context, category domain.Category, filename string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := s.core.blobs.Delete(ctx, category, filename); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warnw("Upload rollback failed, orphan file left for reconcile",
			"category", category,
			"filename", filename,
			"error", err.Error(),
		)
		return
	}
	logger.Infow("Upload rolled back", "category", category, "filename", filename)
}

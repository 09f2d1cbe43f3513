package service

import (
	"context"
	"io"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
)

// MediaServiceImpl is the facade that wires use-case services for media operations.
type MediaServiceImpl struct {
	cfg      *config.Config
	blobs    port.BlobStore
	index    port.RecordIndex
	idGen    IDGenerator
	observer port.Observer
	now      func() time.Time

	ingestUseCase *ingestService
	listUseCase   *listService
	deleteUseCase *deleteService
}

// Ensure MediaServiceImpl implements port.MediaService.
var _ port.MediaService = (*MediaServiceImpl)(nil)

// NewMediaService builds the media service facade and all use-case services.
func NewMediaService(cfg *config.Config, blobs port.BlobStore, index port.RecordIndex, idGen IDGenerator, observer port.Observer) *MediaServiceImpl {
	if observer == nil {
		observer = port.NopObserver{}
	}
	svc := &MediaServiceImpl{
		cfg:      cfg,
		blobs:    blobs,
		index:    index,
		idGen:    idGen,
		observer: observer,
		now:      time.Now,
	}

	svc.ingestUseCase = newIngestService(svc, idGen)
	svc.listUseCase = newListService(svc)
	svc.deleteUseCase = newDeleteService(svc)

	return svc
}

// Ingest delegates upload handling to the ingest use-case service.
func (s *MediaServiceImpl) Ingest(ctx context.Context, category string, originalName string, reader io.Reader) (record *domain.MediaRecord, err error) {
	defer s.observe("ingest", time.Now(), &err)
	return s.ingestUseCase.ingest(ctx, category, originalName, reader)
}

// ListByCategory delegates the grouped listing to the list use-case service.
func (s *MediaServiceImpl) ListByCategory(ctx context.Context) (groups map[domain.Category][]domain.MediaRecord, err error) {
	defer s.observe("list", time.Now(), &err)
	return s.listUseCase.listByCategory(ctx)
}

// Delete delegates removal to the delete use-case service.
func (s *MediaServiceImpl) Delete(ctx context.Context, category string, filename string) (err error) {
	defer s.observe("delete", time.Now(), &err)
	return s.deleteUseCase.delete(ctx, category, filename)
}

func (s *MediaServiceImpl) observe(operation string, start time.Time, err *error) {
	s.observer.ObserveOperation(operation, time.Since(start), *err)
}

// publicBaseURL returns the configured URL prefix of stored files.
func (s *MediaServiceImpl) publicBaseURL() string {
	return s.cfg.Storage.PublicBaseURL
}

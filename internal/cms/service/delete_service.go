package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/gosdk/logger"
)

// deleteService removes a stored file together with its record.
type deleteService struct {
	core *MediaServiceImpl
}

// newDeleteService creates the delete use-case service.
func newDeleteService(core *MediaServiceImpl) *deleteService {
	return &deleteService{core: core}
}

// delete removes the record first and the file second, so an interruption
// leaves at most an unlisted file behind.
func (s *deleteService) delete(ctx context.Context, rawCategory string, rawFilename string) error {
	if rawCategory == "" || rawFilename == "" {
		return fmt.Errorf("%w: category and filename are required", domain.ErrValidation)
	}
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return err
	}
	filename, err := domain.DecodeFilename(rawFilename)
	if err != nil {
		return err
	}
	if err := domain.ValidateStoredName(filename); err != nil {
		return err
	}

	exists, err := s.core.blobs.Exists(ctx, category, filename)
	if err != nil {
		return domain.StorageError("stat file", err)
	}
	if !exists {
		return fmt.Errorf("%w: file %s/%s", domain.ErrNotFound, category, filename)
	}

	if err := s.core.index.Delete(ctx, category, filename); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Errorw("Index delete failed", "category", category, "filename", filename, "error", err.Error())
			return domain.PersistenceError("delete record", err)
		}
		logger.Warnw("Deleting file without index record", "category", category, "filename", filename)
	}

	if err := s.core.blobs.Delete(ctx, category, filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// removed concurrently; the record is gone as well
			return nil
		}
		logger.Errorw("File delete failed after record removal", "category", category, "filename", filename, "error", err.Error())
		return domain.StorageError("delete file", err)
	}

	logger.Infow("Media deleted", "category", category, "filename", filename)
	return nil
}

package service

import (
	"context"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
)

// listService reads the index and groups it by category.
type listService struct {
	core *MediaServiceImpl
}

// newListService creates the list use-case service.
func newListService(core *MediaServiceImpl) *listService {
	return &listService{core: core}
}

// listByCategory returns every category key, newest record first.
func (s *listService) listByCategory(ctx context.Context) (map[domain.Category][]domain.MediaRecord, error) {
	records, err := s.core.index.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("list records", err)
	}
	return domain.Partition(records), nil
}

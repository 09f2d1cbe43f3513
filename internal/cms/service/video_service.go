package service

import (
	"context"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/gosdk/logger"
)

// VideoServiceImpl manages the registered video links.
type VideoServiceImpl struct {
	store    port.VideoStore
	idGen    IDGenerator
	observer port.Observer
	now      func() time.Time
}

var _ port.VideoService = (*VideoServiceImpl)(nil)

func NewVideoService(store port.VideoStore, idGen IDGenerator, observer port.Observer) *VideoServiceImpl {
	if observer == nil {
		observer = port.NopObserver{}
	}
	return &VideoServiceImpl{store: store, idGen: idGen, observer: observer, now: time.Now}
}

// Create validates and appends a video link.
func (s *VideoServiceImpl) Create(ctx context.Context, link, description string) (video *domain.VideoLink, err error) {
	defer func(start time.Time) { s.observer.ObserveOperation("video_create", time.Since(start), err) }(time.Now())

	candidate, err := domain.NewVideoLink("", link, description, s.now())
	if err != nil {
		return nil, err
	}

	candidate.ID, err = s.idGen.NextString()
	if err != nil {
		return nil, domain.StorageError("generate snowflake id", err)
	}

	if err := s.store.Add(ctx, candidate); err != nil {
		logger.Errorw("Video save failed", "id", candidate.ID, "error", err.Error())
		return nil, domain.PersistenceError("add video", err)
	}

	logger.Infow("Video link added", "id", candidate.ID)
	return &candidate, nil
}

// List returns every video link, oldest first.
func (s *VideoServiceImpl) List(ctx context.Context) (videos []domain.VideoLink, err error) {
	defer func(start time.Time) { s.observer.ObserveOperation("video_list", time.Since(start), err) }(time.Now())

	videos, err = s.store.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("list videos", err)
	}
	if videos == nil {
		videos = []domain.VideoLink{}
	}
	return videos, nil
}

// Delete removes a video link by id and returns it.
func (s *VideoServiceImpl) Delete(ctx context.Context, id string) (video *domain.VideoLink, err error) {
	defer func(start time.Time) { s.observer.ObserveOperation("video_delete", time.Since(start), err) }(time.Now())

	if id == "" {
		return nil, domain.ErrInvalidVideo
	}
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, domain.PersistenceError("delete video", err)
	}

	logger.Infow("Video link removed", "id", id)
	return &removed, nil
}

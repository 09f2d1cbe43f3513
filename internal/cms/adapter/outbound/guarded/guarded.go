package guarded

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// Settings configures the breaker placed in front of a network backend.
type Settings = resilience.CircuitBreakerConfig

// NewBreaker builds a circuit breaker that only trips on backend faults.
// Missing keys, duplicates and bad input are answers from a healthy backend.
// Transitions are logged before settings.OnStateChange runs.
func NewBreaker(settings Settings) *resilience.CircuitBreaker {
	settings.IsFailure = isBackendFailure
	onChange := settings.OnStateChange
	settings.OnStateChange = func(name string, from, to resilience.CircuitBreakerState) {
		logTransition(name, from, to)
		if onChange != nil {
			onChange(name, from, to)
		}
	}
	return resilience.NewCircuitBreaker(settings)
}

func isBackendFailure(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateRecord):
		return false
	}
	return true
}

func logTransition(name string, from, to resilience.CircuitBreakerState) {
	logger.Warnw("Circuit breaker state changed", "backend", name, "from", from, "to", to)
}

func run(ctx context.Context, breaker *resilience.CircuitBreaker, op string, fn func(context.Context) error) error {
	err := breaker.Execute(ctx, fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return domain.PersistenceError(op, err)
	}
	return err
}

// RecordIndex wraps a port.RecordIndex with a circuit breaker.
type RecordIndex struct {
	next    port.RecordIndex
	breaker *resilience.CircuitBreaker
}

var _ port.RecordIndex = (*RecordIndex)(nil)

func NewRecordIndex(next port.RecordIndex, breaker *resilience.CircuitBreaker) *RecordIndex {
	return &RecordIndex{next: next, breaker: breaker}
}

func (g *RecordIndex) Insert(ctx context.Context, record domain.MediaRecord) error {
	return run(ctx, g.breaker, "insert record", func(ctx context.Context) error {
		return g.next.Insert(ctx, record)
	})
}

func (g *RecordIndex) List(ctx context.Context) ([]domain.MediaRecord, error) {
	var records []domain.MediaRecord
	err := run(ctx, g.breaker, "list records", func(ctx context.Context) error {
		var err error
		records, err = g.next.List(ctx)
		return err
	})
	return records, err
}

func (g *RecordIndex) Delete(ctx context.Context, category domain.Category, filename string) error {
	return run(ctx, g.breaker, "delete record", func(ctx context.Context) error {
		return g.next.Delete(ctx, category, filename)
	})
}

// VideoStore wraps a port.VideoStore with a circuit breaker.
type VideoStore struct {
	next    port.VideoStore
	breaker *resilience.CircuitBreaker
}

var _ port.VideoStore = (*VideoStore)(nil)

func NewVideoStore(next port.VideoStore, breaker *resilience.CircuitBreaker) *VideoStore {
	return &VideoStore{next: next, breaker: breaker}
}

func (g *VideoStore) Add(ctx context.Context, video domain.VideoLink) error {
	return run(ctx, g.breaker, "add video", func(ctx context.Context) error {
		return g.next.Add(ctx, video)
	})
}

func (g *VideoStore) List(ctx context.Context) ([]domain.VideoLink, error) {
	var videos []domain.VideoLink
	err := run(ctx, g.breaker, "list videos", func(ctx context.Context) error {
		var err error
		videos, err = g.next.List(ctx)
		return err
	})
	return videos, err
}

func (g *VideoStore) Delete(ctx context.Context, id string) (domain.VideoLink, error) {
	var removed domain.VideoLink
	err := run(ctx, g.breaker, "delete video", func(ctx context.Context) error {
		var err error
		removed, err = g.next.Delete(ctx, id)
		return err
	})
	return removed, err
}

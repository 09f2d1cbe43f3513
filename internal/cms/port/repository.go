package port

import (
	"context"
	"io"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
)

//go:generate mockgen -destination=../service/mocks/repository_mock.go -package=mocks -source=repository.go

// BlobStore stores uploaded files partitioned by category.
type BlobStore interface {
	// Put writes the content under category/name, creating the category
	// directory if needed. It returns the written size and CRC32 checksum.
	Put(ctx context.Context, category domain.Category, name string, reader io.Reader) (int64, uint32, error)

	// Exists reports whether category/name is present.
	Exists(ctx context.Context, category domain.Category, name string) (bool, error)

	// Delete removes category/name. Deleting a missing file returns domain.ErrNotFound.
	Delete(ctx context.Context, category domain.Category, name string) error

	// List returns the stored names in a category with their modification info.
	List(ctx context.Context, category domain.Category) ([]BlobInfo, error)

	// ListPartial returns uploads left half-written in a category, for
	// example by a crash while streaming.
	ListPartial(ctx context.Context, category domain.Category) ([]BlobInfo, error)

	// RemovePartial deletes one entry returned by ListPartial.
	RemovePartial(ctx context.Context, category domain.Category, name string) error
}

// RecordIndex is the persistent index of MediaRecords.
type RecordIndex interface {
	// Insert adds a record. A duplicate (category, filename) returns domain.ErrDuplicateRecord.
	Insert(ctx context.Context, record domain.MediaRecord) error

	// List returns every record in the index.
	List(ctx context.Context) ([]domain.MediaRecord, error)

	// Delete removes the record. A missing record returns domain.ErrNotFound.
	Delete(ctx context.Context, category domain.Category, filename string) error
}

// VideoStore persists video links.
type VideoStore interface {
	Add(ctx context.Context, video domain.VideoLink) error
	List(ctx context.Context) ([]domain.VideoLink, error)
	// Delete removes the link by id and returns it. A missing id returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) (domain.VideoLink, error)
}

package port

import (
	"context"
	"io"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
)

//go:generate mockgen -destination=../service/mocks/service_mock.go -package=mocks -source=service.go

// MediaService defines the business logic for categorized image uploads.
type MediaService interface {
	// Ingest validates, stores and indexes an uploaded file.
	Ingest(ctx context.Context, category string, originalName string, reader io.Reader) (*domain.MediaRecord, error)

	// ListByCategory returns every indexed record partitioned by category.
	ListByCategory(ctx context.Context) (map[domain.Category][]domain.MediaRecord, error)

	// Delete removes both the stored file and its index record.
	Delete(ctx context.Context, category string, filename string) error
}

// VideoService defines the business logic for video links.
type VideoService interface {
	Create(ctx context.Context, link, description string) (*domain.VideoLink, error)
	List(ctx context.Context) ([]domain.VideoLink, error)
	Delete(ctx context.Context, id string) (*domain.VideoLink, error)
}

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	DryRun          bool     `json:"dryRun"`
	OrphanFiles     []string `json:"orphanFiles"`
	DanglingRecords []string `json:"danglingRecords"`
	PartialUploads  []string `json:"partialUploads"`
	Errors          []string `json:"errors,omitempty"`
}

// Reconciler repairs drift between the blob store and the record index.
type Reconciler interface {
	Reconcile(ctx context.Context, dryRun bool) (*ReconcileReport, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// ReconcileServiceImpl repairs drift between stored files and index records.
// Files without a record are removed, and so are records without a file and
// leftovers of uploads that never finished.
type ReconcileServiceImpl struct {
	blobs   port.BlobStore
	index   port.RecordIndex
	workers int
	grace   time.Duration
	now     func() time.Time
}

var _ port.Reconciler = (*ReconcileServiceImpl)(nil)

func NewReconcileService(cfg *config.Config, blobs port.BlobStore, index port.RecordIndex) *ReconcileServiceImpl {
	workers := cfg.Reconcile.Workers
	if workers <= 0 {
		workers = 1
	}
	return &ReconcileServiceImpl{
		blobs:   blobs,
		index:   index,
		workers: workers,
		grace:   cfg.ReconcileGracePeriod(),
		now:     time.Now,
	}
}

// categoryResult collects the findings of one category scan. Each scan owns its result.
type categoryResult struct {
	orphans  []string
	dangling []string
	partials []string
	errs     []string
}

func (r *categoryResult) fail(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

// Reconcile scans every category concurrently. With dryRun set nothing is removed.
func (s *ReconcileServiceImpl) Reconcile(ctx context.Context, dryRun bool) (*port.ReconcileReport, error) {
	records, err := s.index.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("list records", err)
	}

	byCategory := make(map[domain.Category]map[string]domain.MediaRecord)
	for _, c := range domain.Categories() {
		byCategory[c] = make(map[string]domain.MediaRecord)
	}
	for _, r := range records {
		if group, ok := byCategory[r.Category]; ok {
			group[r.Filename] = r
		}
	}

	cutoff := s.now().Add(-s.grace)
	categories := domain.Categories()
	results := make([]*categoryResult, len(categories))
	tasks := make([]func(context.Context) error, len(categories))
	for i, c := range categories {
		i, c := i, c
		results[i] = &categoryResult{}
		tasks[i] = func(ctx context.Context) error {
			return s.reconcileCategory(ctx, c, byCategory[c], cutoff, dryRun, results[i])
		}
	}

	logger.Infow("Reconcile started", "dry_run", dryRun, "records", len(records), "workers", s.workers)

	report := &port.ReconcileReport{
		DryRun:          dryRun,
		OrphanFiles:     []string{},
		DanglingRecords: []string{},
		PartialUploads:  []string{},
	}
	for i, taskErr := range resilience.RunAll(ctx, s.workers, tasks) {
		res := results[i]
		report.OrphanFiles = append(report.OrphanFiles, res.orphans...)
		report.DanglingRecords = append(report.DanglingRecords, res.dangling...)
		report.PartialUploads = append(report.PartialUploads, res.partials...)
		report.Errors = append(report.Errors, res.errs...)
		if taskErr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", categories[i], taskErr))
		}
	}

	logger.Infow("Reconcile finished",
		"dry_run", dryRun,
		"orphan_files", len(report.OrphanFiles),
		"dangling_records", len(report.DanglingRecords),
		"partial_uploads", len(report.PartialUploads),
		"errors", len(report.Errors),
	)
	return report, nil
}

func (s *ReconcileServiceImpl) reconcileCategory(
	ctx context.Context,
	category domain.Category,
	records map[string]domain.MediaRecord,
	cutoff time.Time,
	dryRun bool,
	res *categoryResult,
) error {
	blobs, err := s.blobs.List(ctx, category)
	if err != nil {
		return domain.StorageError("list files", err)
	}

	present := make(map[string]struct{}, len(blobs))
	for _, b := range blobs {
		present[b.Name] = struct{}{}
		if _, indexed := records[b.Name]; indexed {
			continue
		}
		// may still be an upload waiting for its record
		if b.ModTime.After(cutoff) {
			continue
		}
		key := domain.RecordKey(category, b.Name)
		if !dryRun {
			if err := s.blobs.Delete(ctx, category, b.Name); err != nil && !errors.Is(err, domain.ErrNotFound) {
				res.fail("delete orphan %s: %v", key, err)
				continue
			}
			logger.Infow("Orphan file removed", "category", category, "filename", b.Name)
		}
		res.orphans = append(res.orphans, key)
	}

	for name, rec := range records {
		if _, ok := present[name]; ok {
			continue
		}
		if rec.UploadedAt.After(cutoff) {
			continue
		}
		key := rec.Key()
		if !dryRun {
			if err := s.index.Delete(ctx, category, name); err != nil && !errors.Is(err, domain.ErrNotFound) {
				res.fail("delete dangling record %s: %v", key, err)
				continue
			}
			logger.Infow("Dangling record removed", "category", category, "filename", name)
		}
		res.dangling = append(res.dangling, key)
	}

	s.sweepPartials(ctx, category, cutoff, dryRun, res)

	sort.Strings(res.orphans)
	sort.Strings(res.dangling)
	sort.Strings(res.partials)
	return nil
}

// sweepPartials removes temp files of uploads older than the grace period.
// Younger ones may still be streaming.
func (s *ReconcileServiceImpl) sweepPartials(ctx context.Context, category domain.Category, cutoff time.Time, dryRun bool, res *categoryResult) {
	partials, err := s.blobs.ListPartial(ctx, category)
	if err != nil {
		res.fail("list partial uploads in %s: %v", category, err)
		return
	}
	for _, p := range partials {
		if p.ModTime.After(cutoff) {
			continue
		}
		key := domain.RecordKey(category, p.Name)
		if !dryRun {
			if err := s.blobs.RemovePartial(ctx, category, p.Name); err != nil && !errors.Is(err, domain.ErrNotFound) {
				res.fail("delete partial upload %s: %v", key, err)
				continue
			}
			logger.Infow("Partial upload removed", "category", category, "filename", p.Name)
		}
		res.partials = append(res.partials, key)
	}
}

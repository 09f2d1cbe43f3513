package sqlindex

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "cms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func record(category domain.Category, filename string, at time.Time) domain.MediaRecord {
	return domain.MediaRecord{
		Filename:   filename,
		URL:        "http://localhost:5000/uploads/" + string(category) + "/" + filename,
		Category:   category,
		UploadedAt: at,
		Size:       42,
		Checksum:   7,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestStoreInsertListDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, record(domain.CategorySocial, "1-a.png", base)))
	require.NoError(t, store.Insert(ctx, record(domain.CategoryInstitution, "2-b.jpg", base.Add(time.Minute))))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2-b.jpg", records[0].Filename)
	assert.Equal(t, domain.CategoryInstitution, records[0].Category)
	assert.Equal(t, int64(42), records[1].Size)
	assert.Equal(t, uint32(7), records[1].Checksum)

	require.NoError(t, store.Delete(ctx, domain.CategorySocial, "1-a.png"))
	records, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStoreInsertDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rec := record(domain.CategorySocial, "1-a.png", time.Now().UTC())

	require.NoError(t, store.Insert(ctx, rec))
	err := store.Insert(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrDuplicateRecord)

	// same filename in another category is a different key
	rec.Category = domain.CategoryInstitution
	assert.NoError(t, store.Insert(ctx, rec))
}

func TestStoreDeleteMissing(t *testing.T) {
	store := openTestStore(t)
	err := store.Delete(context.Background(), domain.CategorySocial, "missing.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVideoStore(t *testing.T) {
	store := openTestStore(t)
	videos := store.Videos()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := domain.VideoLink{ID: "10", Link: "https://v/1", Description: "one", CreatedAt: base}
	second := domain.VideoLink{ID: "11", Link: "https://v/2", Description: "two", CreatedAt: base.Add(time.Second)}
	require.NoError(t, videos.Add(ctx, first))
	require.NoError(t, videos.Add(ctx, second))
	assert.ErrorIs(t, videos.Add(ctx, first), domain.ErrDuplicateRecord)

	list, err := videos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "10", list[0].ID)
	assert.Equal(t, "11", list[1].ID)

	removed, err := videos.Delete(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, "https://v/1", removed.Link)

	_, err = videos.Delete(ctx, "10")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

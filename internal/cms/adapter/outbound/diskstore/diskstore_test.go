package diskstore

import (
	"context"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_PutExistsDelete(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, true)
	require.NoError(t, err)
	ctx := context.Background()

	size, sum, err := store.Put(ctx, domain.CategorySocial, "1-a.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("image-bytes")), size)
	assert.Equal(t, crc32.ChecksumIEEE([]byte("image-bytes")), sum)

	data, err := os.ReadFile(filepath.Join(root, "social", "1-a.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	ok, err := store.Exists(ctx, domain.CategorySocial, "1-a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, domain.CategoryInstitution, "1-a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, domain.CategorySocial, "1-a.png"))
	assert.ErrorIs(t, store.Delete(ctx, domain.CategorySocial, "1-a.png"), domain.ErrNotFound)
}

func TestDiskStore_PutDoesNotOverwrite(t *testing.T) {
	store, err := New(t.TempDir(), false)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = store.Put(ctx, domain.CategorySocial, "1-a.png", strings.NewReader("first"))
	require.NoError(t, err)

	_, _, err = store.Put(ctx, domain.CategorySocial, "1-a.png", strings.NewReader("second"))
	assert.ErrorIs(t, err, ErrBlobExists)
}

func TestDiskStore_ListSkipsTempFiles(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, false)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = store.Put(ctx, domain.CategoryInstitution, "1-a.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "institution", tempPrefix+"123"), []byte("partial"), 0600))

	blobs, err := store.List(ctx, domain.CategoryInstitution)
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, "1-a.png", blobs[0].Name)

	blobs, err = store.List(ctx, domain.CategorySocial)
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestDiskStore_PartialUploads(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, false)
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = store.Put(ctx, domain.CategorySocial, "1-a.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "social", tempPrefix+"123"), []byte("partial"), 0600))

	partials, err := store.ListPartial(ctx, domain.CategorySocial)
	require.NoError(t, err)
	require.Len(t, partials, 1)
	assert.Equal(t, tempPrefix+"123", partials[0].Name)
	assert.Equal(t, int64(len("partial")), partials[0].Size)

	assert.ErrorIs(t, store.RemovePartial(ctx, domain.CategorySocial, "1-a.png"), errNotPartial)
	assert.ErrorIs(t, store.RemovePartial(ctx, domain.CategorySocial, tempPrefix+"/../1-a.png"), errNotPartial)

	require.NoError(t, store.RemovePartial(ctx, domain.CategorySocial, tempPrefix+"123"))
	assert.ErrorIs(t, store.RemovePartial(ctx, domain.CategorySocial, tempPrefix+"123"), domain.ErrNotFound)

	partials, err = store.ListPartial(ctx, domain.CategorySocial)
	require.NoError(t, err)
	assert.Empty(t, partials)

	blobs, err := store.List(ctx, domain.CategorySocial)
	require.NoError(t, err)
	assert.Len(t, blobs, 1)
}

func TestDiskStore_PutKeepsReaderValidationError(t *testing.T) {
	store, err := New(t.TempDir(), false)
	require.NoError(t, err)
	tooLarge := fmt.Errorf("%w: file exceeds the upload size limit", domain.ErrValidation)

	_, _, err = store.Put(context.Background(), domain.CategorySocial, "1-a.png", iotest.ErrReader(tooLarge))
	assert.Equal(t, tooLarge, err)
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir(), false)
	require.NoError(t, err)

	_, err = store.Exists(context.Background(), domain.CategorySocial, "../secret.png")
	assert.ErrorIs(t, err, domain.ErrInvalidFilename)
}

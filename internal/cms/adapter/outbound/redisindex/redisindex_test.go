package redisindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHashes mimics the redis hash commands in memory.
type fakeHashes struct {
	data map[string]map[string]string
	err  error
}

func newFakeHashes() *fakeHashes {
	return &fakeHashes{data: make(map[string]map[string]string)}
}

func (f *fakeHashes) HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	h, ok := f.data[key]
	if !ok {
		h = make(map[string]string)
		f.data[key] = h
	}
	if _, exists := h[field]; exists {
		return redis.NewBoolResult(false, nil)
	}
	h[field] = fmt.Sprintf("%s", value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeHashes) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	if f.err != nil {
		return redis.NewMapStringStringResult(nil, f.err)
	}
	out := make(map[string]string)
	for k, v := range f.data[key] {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (f *fakeHashes) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, field := range fields {
		if _, ok := f.data[key][field]; ok {
			delete(f.data[key], field)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisIndex_InsertListDelete(t *testing.T) {
	hashes := newFakeHashes()
	idx := New(hashes, "test")
	ctx := context.Background()
	rec := domain.MediaRecord{Filename: "1-a.png", Category: domain.CategorySocial, UploadedAt: time.Now().UTC()}

	require.NoError(t, idx.Insert(ctx, rec))
	assert.ErrorIs(t, idx.Insert(ctx, rec), domain.ErrDuplicateRecord)

	stored := hashes.data["test:media:social"]["1-a.png"]
	var decoded domain.MediaRecord
	require.NoError(t, json.Unmarshal([]byte(stored), &decoded))
	assert.Equal(t, "1-a.png", decoded.Filename)

	list, err := idx.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, idx.Delete(ctx, domain.CategorySocial, "1-a.png"))
	assert.ErrorIs(t, idx.Delete(ctx, domain.CategorySocial, "1-a.png"), domain.ErrNotFound)
}

func TestRedisIndex_ScopesByCategory(t *testing.T) {
	idx := New(newFakeHashes(), "")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, domain.MediaRecord{Filename: "1-a.png", Category: domain.CategorySocial}))
	assert.ErrorIs(t, idx.Delete(ctx, domain.CategoryInstitution, "1-a.png"), domain.ErrNotFound)
}

func TestRedisIndex_BackendErrorIsPersistenceError(t *testing.T) {
	hashes := newFakeHashes()
	hashes.err = errors.New("connection refused")
	idx := New(hashes, "test")

	err := idx.Insert(context.Background(), domain.MediaRecord{Filename: "1-a.png", Category: domain.CategorySocial})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = idx.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

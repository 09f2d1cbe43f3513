package redisindex

import (
	"context"
	"encoding/json"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

// hashClient is the subset of the redis client used by the index.
type hashClient interface {
	HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
}

// RedisIndex implements port.RecordIndex with one hash per category:
// <prefix>:media:<category> → filename → JSON record.
type RedisIndex struct {
	client hashClient
	prefix string
}

var _ port.RecordIndex = (*RedisIndex)(nil)

func New(client hashClient, prefix string) *RedisIndex {
	if prefix == "" {
		prefix = "cms"
	}
	return &RedisIndex{client: client, prefix: prefix}
}

func (r *RedisIndex) key(category domain.Category) string {
	return r.prefix + ":media:" + string(category)
}

// Insert relies on HSETNX so concurrent inserts of the same key cannot both win.
func (r *RedisIndex) Insert(ctx context.Context, record domain.MediaRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return domain.PersistenceError("marshal record", err)
	}

	created, err := r.client.HSetNX(ctx, r.key(record.Category), record.Filename, data).Result()
	if err != nil {
		return domain.PersistenceError("redis hsetnx", err)
	}
	if !created {
		return domain.ErrDuplicateRecord
	}
	return nil
}

func (r *RedisIndex) List(ctx context.Context) ([]domain.MediaRecord, error) {
	var out []domain.MediaRecord
	for _, c := range domain.Categories() {
		fields, err := r.client.HGetAll(ctx, r.key(c)).Result()
		if err != nil {
			return nil, domain.PersistenceError("redis hgetall", err)
		}
		for field, raw := range fields {
			var rec domain.MediaRecord
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				logger.Warnw("Skipping undecodable index entry", "category", c, "filename", field, "error", err.Error())
				continue
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *RedisIndex) Delete(ctx context.Context, category domain.Category, filename string) error {
	n, err := r.client.HDel(ctx, r.key(category), filename).Result()
	if err != nil {
		return domain.PersistenceError("redis hdel", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/diskstore"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/guarded"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/metrics"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/mongoindex"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/recordlog"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/redisindex"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/sqlindex"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/videofile"
	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/pkg/idgen"
	"github.com/anthanhphan/go-media-cms/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// backends holds the outbound adapters selected by configuration.
type backends struct {
	blobs   port.BlobStore
	index   port.RecordIndex
	videos  port.VideoStore
	idGen   *idgen.Snowflake
	closers []func(context.Context) error
}

// connections opens each shared client at most once.
type connections struct {
	cfg      *config.Config
	observer *metrics.PrometheusObserver
	owner    *backends

	redisClient *redis.Client
	mongoDB     *mongo.Database
	sqlStore    *sqlindex.Store
}

func openBackends(ctx context.Context, cfg *config.Config, observer *metrics.PrometheusObserver) (b *backends, err error) {
	b = &backends{}
	defer func() {
		if err != nil {
			_ = b.Close(context.Background())
		}
	}()

	conns := &connections{cfg: cfg, observer: observer, owner: b}

	if b.blobs, err = diskstore.New(cfg.Storage.Root, cfg.Storage.FSync); err != nil {
		return nil, err
	}
	if b.index, err = conns.recordIndex(ctx); err != nil {
		return nil, err
	}
	if b.videos, err = conns.videoStore(ctx); err != nil {
		return nil, err
	}

	// Ids come from the shared Redis clock whenever Redis is already part of the deployment.
	var clock idgen.Clock = &idgen.SystemClock{}
	if conns.redisClient != nil {
		clock = idgen.NewRedisClock(conns.redisClient)
	}
	if b.idGen, err = idgen.New(cfg.App.NodeID, clock); err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	logger.Infow("Backends ready",
		"storage_root", cfg.Storage.Root,
		"index_driver", cfg.Index.Driver,
		"video_driver", cfg.Video.Driver,
	)
	return b, nil
}

// Close releases every opened client in reverse order.
func (b *backends) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (c *connections) recordIndex(ctx context.Context) (port.RecordIndex, error) {
	switch c.cfg.Index.Driver {
	case config.DriverLog, "":
		logIndex, err := recordlog.Open(recordlog.Config{
			Dir:                 c.cfg.Index.LogDir,
			FSync:               c.cfg.Storage.FSync,
			CompactionThreshold: c.cfg.Index.CompactionThreshold,
		})
		if err != nil {
			return nil, err
		}
		c.owner.closers = append(c.owner.closers, func(context.Context) error { return logIndex.Close() })
		return logIndex, nil
	case config.DriverMongo:
		db, err := c.mongo(ctx)
		if err != nil {
			return nil, err
		}
		return guarded.NewRecordIndex(mongoindex.NewMediaIndex(db.Collection(mongoindex.MediaCollection)), c.breaker("mongo_index")), nil
	case config.DriverRedis:
		client, err := c.redis(ctx)
		if err != nil {
			return nil, err
		}
		return guarded.NewRecordIndex(redisindex.New(client, c.cfg.Redis.KeyPrefix), c.breaker("redis_index")), nil
	case config.DriverSQLite:
		store, err := c.sqlite(ctx)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown index driver %q", c.cfg.Index.Driver)
	}
}

func (c *connections) videoStore(ctx context.Context) (port.VideoStore, error) {
	switch c.cfg.Video.Driver {
	case config.DriverFile, "":
		store, err := videofile.New(c.cfg.Video.FilePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMongo:
		db, err := c.mongo(ctx)
		if err != nil {
			return nil, err
		}
		return guarded.NewVideoStore(mongoindex.NewVideoStore(db.Collection(mongoindex.VideoCollection)), c.breaker("mongo_videos")), nil
	case config.DriverSQLite:
		store, err := c.sqlite(ctx)
		if err != nil {
			return nil, err
		}
		return store.Videos(), nil
	default:
		return nil, fmt.Errorf("unknown video driver %q", c.cfg.Video.Driver)
	}
}

func (c *connections) breaker(name string) *resilience.CircuitBreaker {
	settings := guarded.Settings{
		Name:             name,
		FailureThreshold: c.cfg.Breaker.FailureThreshold,
		OpenTimeout:      c.cfg.BreakerOpenTimeout(),
	}
	if c.observer != nil {
		settings.OnStateChange = c.observer.ObserveBreaker
	}
	return guarded.NewBreaker(settings)
}

func (c *connections) mongo(ctx context.Context) (*mongo.Database, error) {
	if c.mongoDB != nil {
		return c.mongoDB, nil
	}
	client, db, err := mongoindex.Connect(ctx, c.cfg.Mongo.URI, c.cfg.Mongo.Database, c.cfg.MongoTimeout())
	if err != nil {
		return nil, err
	}
	c.owner.closers = append(c.owner.closers, client.Disconnect)
	c.mongoDB = db
	return db, nil
}

func (c *connections) redis(ctx context.Context) (*redis.Client, error) {
	if c.redisClient != nil {
		return c.redisClient, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	c.owner.closers = append(c.owner.closers, func(context.Context) error { return client.Close() })
	c.redisClient = client
	return client, nil
}

func (c *connections) sqlite(ctx context.Context) (*sqlindex.Store, error) {
	if c.sqlStore != nil {
		return c.sqlStore, nil
	}
	store, err := sqlindex.Open(ctx, c.cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	c.owner.closers = append(c.owner.closers, func(context.Context) error { return store.Close() })
	c.sqlStore = store
	return store, nil
}

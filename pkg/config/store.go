package config

import (
	"context"

	"github.com/matzehuels/pscdeps/pkg/cache"
	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
)

// OpenStore connects the configured catalog store. The caller closes it.
func (c *Config) OpenStore(ctx context.Context) (cache.Store, error) {
	var (
		store cache.Store
		err   error
	)
	switch c.Cache.Store {
	case StoreFile:
		store, err = cache.NewFileStore(c.Cache.Dir)
	case StoreMemory:
		store = cache.NewMemoryStore()
	case StoreRedis:
		store, err = cache.NewRedisStore(ctx, c.Redis.URL, c.Redis.Prefix)
	case StoreMongo:
		store, err = cache.NewMongoStore(ctx, c.Mongo.URI, c.Mongo.Database, c.Mongo.Collection)
	default:
		return nil, pscerrors.New(pscerrors.ErrCodeInvalidConfig, "unknown store %q", c.Cache.Store)
	}
	if err != nil {
		return nil, pscerrors.Wrap(pscerrors.ErrCodeCache, err, "open %s store", c.Cache.Store)
	}
	return store, nil
}

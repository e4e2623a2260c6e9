package bot

import (
	"context"
	"io"

	"emperror.dev/errors"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/db"
	"github.com/starshine-sys/quotebot/store"
	"github.com/starshine-sys/quotebot/store/jsonfile"
	"github.com/starshine-sys/quotebot/store/memory"
	redisstore "github.com/starshine-sys/quotebot/store/redis"
)

// OpenStorage opens the storage backend set in the configuration.
// The returned io.Closer is nil if the backend doesn't hold a connection.
func OpenStorage(ctx context.Context, c Config) (store.Storage, io.Closer, error) {
	if c.Bot.TestMode {
		log.Warn("Test mode is enabled, quotes are only stored in memory!")
		return memory.New(), nil, nil
	}

	switch c.Storage.Backend {
	case BackendJSON, "":
		s := jsonfile.New(c.Storage.Path)
		log.Infof("Storing quotes in %v", s.Path())
		return s, nil, nil
	case BackendMemory:
		log.Warn("Quotes are only stored in memory, and will be lost on restart!")
		return memory.New(), nil, nil
	case BackendPostgres:
		if c.Auth.Postgres == "" {
			return nil, nil, errors.New("postgres backend selected, but no database url set")
		}

		ctx, cancel := context.WithTimeout(ctx, c.Storage.Timeout())
		defer cancel()

		d, err := db.New(ctx, c.Auth.Postgres, !c.Bot.NoAutoMigrate)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening database connection")
		}
		log.Info("Opened database connection.")
		return d, d, nil
	case BackendRedis:
		if c.Auth.Redis == "" {
			return nil, nil, errors.New("redis backend selected, but no redis url set")
		}

		s, err := redisstore.New(c.Auth.Redis, c.Storage.RedisKey)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connecting to redis")
		}
		log.Info("Connected to Redis.")
		return s, s, nil
	}

	return nil, nil, errors.Errorf("unknown storage backend %q", c.Storage.Backend)
}

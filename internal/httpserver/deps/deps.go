package deps

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/catalog"
	"github.com/skyseek/skyseek/internal/engine"
	"github.com/skyseek/skyseek/internal/logger"
	"github.com/skyseek/skyseek/internal/sources"
	redisstore "github.com/skyseek/skyseek/internal/store/redis"
)

// Deps is the shared dependency container handed to every route.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Engine  *engine.Engine
	Catalog *catalog.Index
	Cache   *cache.ResultCache
	Sources *sources.Registry

	RedisClient *goredis.Client   // nil when Redis is disabled
	Recents     *redisstore.Store // nil when Redis is disabled
	RecentsMax  int
}

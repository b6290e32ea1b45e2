package middleware

import (
	"bytes"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	compoundcache "github.com/x-xyz/goauction/service/cache/compoundCache"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/goauction/service/cache/provider/redis"
	"github.com/x-xyz/goauction/service/redis"
)

const (
	// HeaderXCache tells whether a response came from the cache
	HeaderXCache = "X-Cache"

	localCacheEntries = 64
	maxLocalTTL       = 10 * time.Second
)

var (
	cacheMiddlewareLocalCache provider.Provider
	cacheMiddlewareRedisCache provider.Provider

	cacheMiddlewarePfx = keys.PfxHttpCache

	once = sync.Once{}
)

// SetupCache must run before any route uses CacheHttp
func SetupCache(redis redis.Service) {
	once.Do(func() {
		cacheMiddlewareLocalCache = primitive.NewPrimitive(cacheMiddlewarePfx, localCacheEntries)
		cacheMiddlewareRedisCache = redisCache.NewRedis(redis)
	})
}

// Response is what a cache entry holds
type Response struct {
	Value       []byte `cbor:"1,keyasint"`
	ContentType string `cbor:"2,keyasint"`
}

// recorder copies the body into a buffer while it is written to the client
type recorder struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *recorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// cacheKey hashes the path and the query with its values sorted, so parameter order
// doesn't split entries
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, values := range params {
		sort.Strings(values)
	}

	hash := fnv.New64a()
	_, _ = io.WriteString(hash, u.Path)
	_, _ = io.WriteString(hash, "?")
	_, _ = io.WriteString(hash, params.Encode())
	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp serves repeated GETs from a process-local cache backed by redis. Only 200
// responses are stored, the local layer keeps them for at most ten seconds.
func CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	if cacheMiddlewareLocalCache == nil || cacheMiddlewareRedisCache == nil {
		panic("need SetupCache before using CacheHttp")
	}

	localTTL := maxLocalTTL
	if ttl < localTTL {
		localTTL = ttl
	}

	cacheService := compoundcache.NewCompoundCache([]cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   localTTL,
			Pfx:   cacheMiddlewarePfx,
			Cache: cacheMiddlewareLocalCache,
		}),
		cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   cacheMiddlewarePfx,
			Cache: cacheMiddlewareRedisCache,
		}),
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(c.Request().URL)

			cached := Response{}
			if err := cacheService.Get(ctx, key, &cached); err == nil {
				c.Response().Header().Set(HeaderXCache, "HIT")
				return c.Blob(http.StatusOK, cached.ContentType, cached.Value)
			} else if err != cache.ErrNotFound {
				ctx.WithField("err", err).Error("cacheService.Get failed")
			}

			c.Response().Header().Set(HeaderXCache, "MISS")
			rec := &recorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.status == http.StatusOK {
				entry := Response{
					Value:       rec.body.Bytes(),
					ContentType: rec.Header().Get(echo.HeaderContentType),
				}
				if err := cacheService.Set(ctx, key, entry); err != nil {
					ctx.WithField("err", err).Error("cacheService.Set failed")
				}
			}
			return nil
		}
	}
}

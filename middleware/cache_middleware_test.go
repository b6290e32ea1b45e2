package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/redis"
	mockRedis "github.com/x-xyz/goauction/service/redis/mocks"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	redis *mockRedis.Service
}

func (s *cacheMiddlewareSuite) SetupSuite() {
	s.redis = &mockRedis.Service{}
	s.redis.On("Get", mock.Anything, mock.Anything).Return(nil, redis.ErrNotFound)
	s.redis.On("Set", mock.Anything, mock.Anything, mock.Anything, 30*time.Second).Return(nil)

	SetupCache(s.redis)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(method, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())

	s.Require().NoError(CacheHttp(30 * time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	calls := 0
	h := func(body string) echo.HandlerFunc {
		return func(c echo.Context) error {
			calls++
			return c.JSON(http.StatusOK, map[string]string{"msg": body})
		}
	}

	rec := s.serve(http.MethodGet, "/events?limit=5&offset=0", h("Hello, World"))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("MISS", rec.Header().Get(HeaderXCache))
	s.JSONEq(`{"msg":"Hello, World"}`, rec.Body.String())

	// same query in another order hits the cache
	rec2 := s.serve(http.MethodGet, "/events?offset=0&limit=5", h("Hello, again"))
	s.Equal(http.StatusOK, rec2.Code)
	s.Equal("HIT", rec2.Header().Get(HeaderXCache))
	s.Equal(echo.MIMEApplicationJSONCharsetUTF8, rec2.Header().Get(echo.HeaderContentType))
	s.JSONEq(`{"msg":"Hello, World"}`, rec2.Body.String())
	s.Equal(1, calls)

	s.redis.AssertCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, 30*time.Second)
}

func (s *cacheMiddlewareSuite) TestErrorResponseNotCached() {
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusNotFound, "nope")
	}

	s.Equal(http.StatusNotFound, s.serve(http.MethodGet, "/missing", h).Code)
	s.Equal(http.StatusNotFound, s.serve(http.MethodGet, "/missing", h).Code)
	s.Equal(2, calls)
}

func (s *cacheMiddlewareSuite) TestOnlyGet() {
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	}

	s.serve(http.MethodPost, "/auction/bid", h)
	s.serve(http.MethodPost, "/auction/bid", h)
	s.Equal(2, calls)
}

func (s *cacheMiddlewareSuite) TestCacheKey() {
	parse := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		s.Require().NoError(err)
		return u
	}

	s.Equal(cacheKey(parse("/events?a=2&a=1&b=x")), cacheKey(parse("/events?b=x&a=1&a=2")))
	s.NotEqual(cacheKey(parse("/events?a=1")), cacheKey(parse("/events/recent?a=1")))
	s.NotEqual(cacheKey(parse("/events?a=1")), cacheKey(parse("/events?a=2")))
}

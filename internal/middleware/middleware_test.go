package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/tourmate/internal/config"
    "github.com/iliyamo/tourmate/internal/namespace"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
    for _, ck := range rec.Result().Cookies() {
        if ck.Name == SessionCookie {
            return ck
        }
    }
    return nil
}

func newRedis(t *testing.T) *redis.Client {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return rdb
}

func TestSessionNamespaceIssuesAndReusesScope(t *testing.T) {
    e := echo.New()
    reg := namespace.NewMemoryRegistry(time.Hour)
    e.Use(SessionNamespace("secret", time.Hour, reg.Open))
    e.GET("/", func(c echo.Context) error {
        if Namespace(c) == nil {
            return c.NoContent(http.StatusInternalServerError)
        }
        return c.String(http.StatusOK, Scope(c))
    })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    require.Equal(t, http.StatusOK, rec.Code)
    ck := sessionCookie(rec)
    require.NotNil(t, ck)
    assert.True(t, ck.HttpOnly)
    first := rec.Body.String()
    assert.Len(t, first, 32)

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.AddCookie(ck)
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, first, rec.Body.String())
    assert.Nil(t, sessionCookie(rec))

    req = httptest.NewRequest(http.MethodGet, "/", nil)
    req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.NotEqual(t, first, rec.Body.String())
    assert.NotNil(t, sessionCookie(rec))
}

func TestSessionCookieSecureOverHTTPS(t *testing.T) {
    e := echo.New()
    e.Use(SessionNamespace("secret", time.Hour, namespace.NewMemoryRegistry(time.Hour).Open))
    e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    ck := sessionCookie(rec)
    require.NotNil(t, ck)
    assert.False(t, ck.Secure)

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set(echo.HeaderXForwardedProto, "https")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    ck = sessionCookie(rec)
    require.NotNil(t, ck)
    assert.True(t, ck.Secure)
}

func TestScopeOutsideSession(t *testing.T) {
    c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    assert.Equal(t, "anon", Scope(c))
    assert.Nil(t, Namespace(c))
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
    cfg := config.RateLimitConfig{
        Enabled:        true,
        Capacity:       2,
        RefillTokens:   1,
        RefillInterval: time.Hour,
        TTL:            10 * time.Hour,
        KeyStrategy:    "ip",
        Prefix:         "rl",
    }
    e := echo.New()
    e.Use(NewTokenBucket(cfg, newRedis(t)))
    e.POST("/clients", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

    codes := make([]int, 0, 3)
    var last *httptest.ResponseRecorder
    for i := 0; i < 3; i++ {
        last = httptest.NewRecorder()
        e.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/clients", nil))
        codes = append(codes, last.Code)
    }
    assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
    assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
    assert.Equal(t, "3600", last.Header().Get("Retry-After"))
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
    e := echo.New()
    e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
    e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRedisCacheServesHits(t *testing.T) {
    cfg := config.CacheConfig{
        Enabled:     true,
        Methods:     map[string]bool{http.MethodGet: true},
        TTL:         time.Minute,
        KeyStrategy: "route_query",
        Prefix:      "cache",
    }
    calls := 0
    e := echo.New()
    e.GET("/v1/recommendation", func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, echo.Map{"budget": c.QueryParam("budget")})
    }, NewRedisCache(cfg, newRedis(t)))

    get := func(q string) *httptest.ResponseRecorder {
        rec := httptest.NewRecorder()
        e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/recommendation?"+q, nil))
        return rec
    }

    first := get("budget=100")
    assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
    second := get("budget=100")
    assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
    assert.Equal(t, first.Body.String(), second.Body.String())
    assert.Equal(t, first.Header().Get(echo.HeaderContentType), second.Header().Get(echo.HeaderContentType))

    other := get("budget=200")
    assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)
}

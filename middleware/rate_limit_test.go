package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limiter gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func hit(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddlewareBurstThenReject(t *testing.T) {
	router := newLimitedRouter(RateLimitMiddleware(0.0001, 3))

	addr := "10.1.1.1:5000"
	for i := 0; i < 3; i++ {
		w := hit(router, addr)
		assert.Equal(t, http.StatusOK, w.Code, "request %d within burst", i)
	}

	w := hit(router, addr)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitMiddlewarePerIP(t *testing.T) {
	router := newLimitedRouter(RateLimitMiddleware(0.0001, 1))

	assert.Equal(t, http.StatusOK, hit(router, "10.2.2.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.2.2.1:5000").Code)

	// a different client still has its own bucket
	assert.Equal(t, http.StatusOK, hit(router, "10.2.2.2:5000").Code)
}

func TestRedisRateLimitMiddlewareBasic(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	// 1 rps over a 1s window plus burst 2 -> 3 allowed per window
	router := newLimitedRouter(RedisRateLimitMiddleware(rdb, 1, 2, time.Second))

	addr := "10.3.3.1:5000"
	allowed := 0
	for i := 0; i < 5; i++ {
		if hit(router, addr).Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)

	w := hit(router, addr)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other clients are counted separately
	assert.Equal(t, http.StatusOK, hit(router, "10.3.3.2:5000").Code)
}

func TestRedisRateLimitMiddlewareFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	router := newLimitedRouter(RedisRateLimitMiddleware(rdb, 1, 0, time.Second))

	mr.Close()

	// limiter backend down, traffic still flows
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(router, "10.4.4.1:5000").Code)
	}
}

func TestRedisRateLimitMiddlewareNilClientFallsBack(t *testing.T) {
	router := newLimitedRouter(RedisRateLimitMiddleware(nil, 0.0001, 1, time.Second))

	addr := "10.5.5.1:5000"
	assert.Equal(t, http.StatusOK, hit(router, addr).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(router, addr).Code)
}

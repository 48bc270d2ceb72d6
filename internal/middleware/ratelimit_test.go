package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// newLimitedHandler wires the rate limiter in front of a trivial handler
// against a miniredis instance.
func newLimitedHandler(t *testing.T, maxRequests int, window time.Duration) (*miniredis.Miniredis, echo.HandlerFunc) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	mw := RateLimit(rdb, maxRequests, window)
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return mr, h
}

// doRequest runs one request from the given IP through the handler.
func doRequest(t *testing.T, h echo.HandlerFunc, ip string) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/login")

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code
}

func TestRateLimit_UnderLimit(t *testing.T) {
	_, h := newLimitedHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if code := doRequest(t, h, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d blocked with %d, want 200", i+1, code)
		}
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	_, h := newLimitedHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		doRequest(t, h, "10.0.0.1")
	}
	if code := doRequest(t, h, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("4th request got %d, want 429", code)
	}

	// A different client IP has its own counter.
	if code := doRequest(t, h, "10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other IP blocked with %d, want 200", code)
	}
}

func TestRateLimit_WindowExpiry(t *testing.T) {
	mr, h := newLimitedHandler(t, 2, time.Minute)

	doRequest(t, h, "10.0.0.1")
	doRequest(t, h, "10.0.0.1")
	if code := doRequest(t, h, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("3rd request got %d, want 429", code)
	}

	// Advance past the window; the counter expires and requests flow again.
	mr.FastForward(time.Minute + time.Second)

	if code := doRequest(t, h, "10.0.0.1"); code != http.StatusOK {
		t.Fatalf("request after window expiry got %d, want 200", code)
	}
}

func TestRateLimit_CounterAlwaysHasExpiry(t *testing.T) {
	// The counter and its TTL are created in one atomic step. A key with
	// no TTL would limit its IP+path forever.
	mr, h := newLimitedHandler(t, 3, time.Minute)

	doRequest(t, h, "10.0.0.1")

	key := "ratelimit:/api/login:10.0.0.1"
	if !mr.Exists(key) {
		t.Fatalf("counter key %q was not created", key)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("counter TTL = %v, want (0, 1m]", ttl)
	}

	// Subsequent hits must not reset the window.
	doRequest(t, h, "10.0.0.1")
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("counter TTL after second hit = %v, want (0, 1m]", ttl)
	}
}

func TestRateLimit_FailsOpenWhenRedisDown(t *testing.T) {
	mr, h := newLimitedHandler(t, 1, time.Minute)

	mr.Close()

	// With Redis down the limiter must allow traffic rather than lock
	// everyone out.
	if code := doRequest(t, h, "10.0.0.1"); code != http.StatusOK {
		t.Fatalf("request with Redis down got %d, want 200", code)
	}
}

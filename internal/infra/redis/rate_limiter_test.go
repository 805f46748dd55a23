//go:build !integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClient struct {
	counts  map[string]int64
	expires map[string]time.Duration
	incrErr error
}

func newStubClient() *stubClient {
	return &stubClient{counts: make(map[string]int64), expires: make(map[string]time.Duration)}
}

func (s *stubClient) Ping(context.Context) error { return nil }
func (s *stubClient) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (s *stubClient) Get(context.Context, string) (string, error) { return "", Nil }
func (s *stubClient) Incr(ctx context.Context, key string) (int64, error) {
	if s.incrErr != nil {
		return 0, s.incrErr
	}
	s.counts[key]++
	return s.counts[key], nil
}
func (s *stubClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	s.expires[key] = expiration
	return nil
}
func (s *stubClient) Del(context.Context, ...string) error { return nil }
func (s *stubClient) Close() error                         { return nil }

func TestRateLimiterAllow(t *testing.T) {
	client := newStubClient()
	rl := NewRateLimiter(client)
	key := GateScanKey("gate-1")

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(context.Background(), key, 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !ok {
			t.Fatalf("request %d denied below the limit", i)
		}
	}
	ok, err := rl.Allow(context.Background(), key, 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Fatal("request above the limit allowed")
	}

	// The TTL is set exactly once, on the first hit of the window.
	if got := client.expires[key]; got != time.Minute {
		t.Fatalf("window TTL = %v, want 1m", got)
	}
}

func TestRateLimiterIsolatesGates(t *testing.T) {
	rl := NewRateLimiter(newStubClient())

	if ok, _ := rl.Allow(context.Background(), GateScanKey("gate-a"), 1, time.Minute); !ok {
		t.Fatal("gate-a first request denied")
	}
	if ok, _ := rl.Allow(context.Background(), GateScanKey("gate-a"), 1, time.Minute); ok {
		t.Fatal("gate-a second request allowed over limit")
	}
	if ok, _ := rl.Allow(context.Background(), GateScanKey("gate-b"), 1, time.Minute); !ok {
		t.Fatal("gate-b throttled by gate-a's counter")
	}
}

func TestRateLimiterPropagatesClientErrors(t *testing.T) {
	client := newStubClient()
	client.incrErr = errors.New("connection refused")
	rl := NewRateLimiter(client)

	if _, err := rl.Allow(context.Background(), GateScanKey("gate-1"), 5, time.Minute); err == nil {
		t.Fatal("expected the client error to surface")
	}
}

package riot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/platform/resilience"
	"github.com/riskibarqy/lol-companion/internal/usecase"
)

const testToken = "RGAPI-test-token"

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*ClientConfig)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		HTTPClient:      server.Client(),
		BaseURLTemplate: server.URL,
		Token:           testToken,
		RetryBackoff:    time.Millisecond,
		CircuitBreaker:  resilience.CircuitBreakerConfig{Enabled: false},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_FetchMatchReturnsPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lol/match/v5/matches/EUW1_6912345678" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get(tokenHeader); got != testToken {
			t.Errorf("unexpected token header: %q", got)
		}
		_, _ = w.Write([]byte(`{"metadata":{"matchId":"EUW1_6912345678"}}`))
	}, nil)

	body, found, err := client.FetchMatch(context.Background(), match.PlatformEUW1, 6912345678)
	if err != nil {
		t.Fatalf("FetchMatch error: %v", err)
	}
	if !found {
		t.Fatalf("expected match to be found")
	}
	if !strings.Contains(string(body), "EUW1_6912345678") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestClient_FetchMatchNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status":{"status_code":404}}`, http.StatusNotFound)
	}, nil)

	body, found, err := client.FetchMatch(context.Background(), match.PlatformNA1, 1)
	if err != nil {
		t.Fatalf("FetchMatch error: %v", err)
	}
	if found || body != nil {
		t.Fatalf("expected not found, got found=%v body=%s", found, body)
	}
}

func TestClient_FetchMatchRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
	})

	_, found, err := client.FetchMatch(context.Background(), match.PlatformKR, 7)
	if err != nil || !found {
		t.Fatalf("expected success after retry, found=%v err=%v", found, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestClient_FetchMatchDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key "+testToken, http.StatusForbidden)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	_, _, err := client.FetchMatch(context.Background(), match.PlatformNA1, 1)
	if err == nil {
		t.Fatalf("expected error for 403")
	}
	if strings.Contains(err.Error(), testToken) {
		t.Fatalf("token leaked in error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call, got %d", got)
	}
}

func TestClient_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for i := 0; i < 2; i++ {
		if _, _, err := client.FetchMatch(context.Background(), match.PlatformOC1, 9); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected exhausted transient failure to be unavailable on call %d, got %v", i, err)
		}
	}

	_, _, err := client.FetchMatch(context.Background(), match.PlatformOC1, 9)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected open breaker to skip upstream, got %d calls", got)
	}
}

func TestClient_SharedFetchOutlivesFirstCallerDeadline(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	arrived := make(chan struct{}, 1)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case arrived <- struct{}{}:
		default:
		}
		select {
		case <-time.After(150 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(`{"metadata":{"matchId":"EUW1_1"}}`))
	}, nil)

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := client.FetchMatch(shortCtx, match.PlatformEUW1, 1)
		firstErr <- err
	}()
	<-arrived

	body, found, err := client.FetchMatch(context.Background(), match.PlatformEUW1, 1)
	if err != nil || !found {
		t.Fatalf("second caller must not inherit the first caller's deadline, found=%v err=%v", found, err)
	}
	if !strings.Contains(string(body), "EUW1_1") {
		t.Fatalf("unexpected body: %s", body)
	}
	if err := <-firstErr; !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected first caller to hit its own deadline, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one shared upstream call, got %d", got)
	}
}

func TestIsRiotCircuitFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transient", err: fmt.Errorf("%w: status=503", errRiotTransient), want: true},
		{name: "caller canceled", err: fmt.Errorf("%w: %w", errRiotTransient, context.Canceled), want: false},
		{name: "caller deadline", err: context.DeadlineExceeded, want: false},
		{name: "client error", err: errors.New("provider status=403"), want: false},
	}
	for _, tc := range cases {
		if got := isRiotCircuitFailure(tc.err); got != tc.want {
			t.Fatalf("%s: isRiotCircuitFailure=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestClient_FetchMatchRejectsUnknownPlatform(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Errorf("upstream must not be called")
	}, nil)

	_, _, err := client.FetchMatch(context.Background(), match.Platform("XX1"), 1)
	if !errors.Is(err, match.ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestRegionFor(t *testing.T) {
	t.Parallel()

	cases := map[match.Platform]string{
		match.PlatformNA1:  RegionAmericas,
		match.PlatformLA2:  RegionAmericas,
		match.PlatformEUW1: RegionEurope,
		match.PlatformTR1:  RegionEurope,
		match.PlatformKR:   RegionAsia,
		match.PlatformOC1:  RegionSEA,
	}
	for platform, want := range cases {
		if got, ok := RegionFor(platform); !ok || got != want {
			t.Fatalf("RegionFor(%s)=%q,%v want %q", platform, got, ok, want)
		}
	}
	for platform := range match.AllPlatforms {
		if _, ok := RegionFor(platform); !ok {
			t.Fatalf("platform %s has no region", platform)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	if got, ok := retryAfter("3"); !ok || got != 3*time.Second {
		t.Fatalf("unexpected retry after: %s %v", got, ok)
	}
	if got, _ := retryAfter("600"); got != maxRetryAfter {
		t.Fatalf("expected cap, got %s", got)
	}
	if _, ok := retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"); ok {
		t.Fatalf("http dates are not supported")
	}
}

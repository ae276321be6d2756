package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/lol-companion/internal/config"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                  config.EnvDev,
		HTTPAddr:                ":0",
		ReadTimeout:             time.Second,
		WriteTimeout:            time.Second,
		CORSAllowedOrigins:      []string{"*"},
		MatchStoreDriver:        config.StoreMemory,
		CacheEnabled:            true,
		CacheTTL:                time.Minute,
		RiotBaseURLTemplate:     "http://127.0.0.1:1",
		RiotTimeout:             time.Second,
		MatchDefaultWinningTeam: match.TeamBlue,
		MatchBatchWorkers:       2,
	}
}

func TestNew_MemoryStoreServesRoutes(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected healthz response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/platforms/NOPE/matches/1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown platform, got %d", rec.Code)
	}
}

func TestNew_RejectsUnknownStore(t *testing.T) {
	cfg := memoryConfig()
	cfg.MatchStoreDriver = "cassandra"

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

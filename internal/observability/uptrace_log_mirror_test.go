package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/lol-companion/internal/domain/match"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsHealthCheckLog(t *testing.T) {
	if !isHealthCheckLog("http_request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if isHealthCheckLog("http_request", []any{"path", "/v1/platforms/NA1/matches/1"}) {
		t.Fatalf("did not expect match lookup log to be skipped")
	}
	if isHealthCheckLog("match ingested", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-http_request event to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"platform", match.PlatformKR, "game_id", int64(7), "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "platform" || attrs[0].Value.AsString() != "KR" {
		t.Fatalf("unexpected platform attribute: %v", attrs[0])
	}
	if attrs[1].Key != "game_id" || attrs[1].Value.AsInt64() != 7 {
		t.Fatalf("unexpected game_id attribute: %v", attrs[1])
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %v", attrs[2])
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute: %v", attrs[3])
	}
}

func TestLogValue(t *testing.T) {
	v := logValue(map[string]any{
		"fields":  []any{"info.mapId", "info.gameMode"},
		"elapsed": 1500 * time.Millisecond,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "elapsed" || items[0].Value.AsString() != "1.5s" {
		t.Fatalf("unexpected map items: %v", items)
	}
	if items[1].Value.Kind() != otellog.KindSlice || len(items[1].Value.AsSlice()) != 2 {
		t.Fatalf("unexpected fields value: %v", items[1].Value)
	}
}

func TestSeverityOf(t *testing.T) {
	cases := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel: otellog.SeverityDebug,
		zapcore.InfoLevel:  otellog.SeverityInfo,
		zapcore.WarnLevel:  otellog.SeverityWarn,
		zapcore.ErrorLevel: otellog.SeverityError,
		zapcore.PanicLevel: otellog.SeverityFatal,
	}
	for level, want := range cases {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s)=%v want %v", level, got, want)
		}
	}
}

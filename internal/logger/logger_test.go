package logger

import (
	"testing"

	"github.com/samvad-hq/placeholder-client/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestZapLoggerWritesStructuredField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))

	log.WarnObj("request completed", "placeholder_request", map[string]any{"status_code": 404})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].Message != "request completed" {
		t.Fatalf("unexpected entry: %#v", entries[0])
	}
	if _, ok := entries[0].ContextMap()["placeholder_request"]; !ok {
		t.Fatalf("structured field missing: %#v", entries[0].ContextMap())
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	log, err := Init(&config.Config{LogLevel: "error"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil {
		t.Fatalf("expected loggers to be initialized")
	}
	InfoObj("dropped below level", "k", 1)
}

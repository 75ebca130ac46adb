package requestctx

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestLoggerDefaultsToNoop(t *testing.T) {
	if Logger(context.Background()) != NoopLogger() {
		t.Fatalf("expected noop logger")
	}

	logger := zap.NewExample()
	if Logger(WithLogger(context.Background(), logger)) != logger {
		t.Fatalf("expected stored logger")
	}
}

func TestTraceAndLocale(t *testing.T) {
	ctx := context.Background()
	if TraceID(ctx) != "" || Locale(ctx) != "" {
		t.Fatalf("expected empty values")
	}

	ctx = WithTrace(ctx, TraceInfo{TraceID: "t-1", ProjectID: "p"})
	ctx = WithLocale(ctx, "ua")
	if TraceID(ctx) != "t-1" {
		t.Fatalf("expected trace id t-1, got %q", TraceID(ctx))
	}
	if Locale(ctx) != "ua" {
		t.Fatalf("expected locale ua, got %q", Locale(ctx))
	}
}

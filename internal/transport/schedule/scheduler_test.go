package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_UnknownLocation(t *testing.T) {
	if _, err := New(nil, "Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown location")
	}
}

func TestAdd_InvalidSpec(t *testing.T) {
	s, err := New(nil, "UTC")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Add(context.Background(), "every tuesday", func(context.Context) {}); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestRun_FiresAndStopsOnCancel(t *testing.T) {
	s, err := New(nil, "UTC")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	fired := make(chan struct{}, 1)
	if err := s.Add(ctx, "@every 10ms", func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestCronLogger_MapsKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := cronLogger{log: zap.New(core)}

	l.Info("wake", "now", "2026-01-01")
	l.Error(errors.New("panic"), "job failed", "entry", 1)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["now"] != "2026-01-01" {
		t.Fatalf("unexpected fields: %v", entries[0].ContextMap())
	}
	if entries[1].Level != zapcore.ErrorLevel || entries[1].ContextMap()["error"] != "panic" {
		t.Fatalf("unexpected error entry: %+v", entries[1])
	}
}

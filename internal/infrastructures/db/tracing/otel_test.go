package tracing

import (
	"context"
	"testing"
)

func TestNormalizeJaegerCollector(t *testing.T) {
	cases := map[string]string{
		"jaeger:14268":                      "http://jaeger:14268/api/traces",
		"http://jaeger:14268/":              "http://jaeger:14268/api/traces",
		"https://collector.test/api/traces": "https://collector.test/api/traces",
		"  localhost:14268  ":               "http://localhost:14268/api/traces",
	}

	for in, want := range cases {
		if got := normalizeJaegerCollector(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestInitTracer_EmptyCollectorIsNoop(t *testing.T) {
	shutdown, err := InitTracer("ajax-scraper", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}

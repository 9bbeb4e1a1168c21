package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelvbend/ajax-scraper/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestRetryPolicyFromConfig(t *testing.T) {
	cfg := &config.Config{Retry: config.RetryConfig{Strategy: " Exponential", MaxRetries: 7}}
	p := retryPolicy(cfg)
	if p.Strategy != "exponential" || p.MaxRetries != 7 {
		t.Fatalf("unexpected policy %+v", p)
	}
}

func TestPreviewCommand_RendersSavedPage(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	htmlPath := filepath.Join(dir, "matches.html")

	cfgBody := "log:\n  level: error\nsite:\n  base_url: https://tickets.test/\n"
	if err := os.WriteFile(cfgPath, []byte(cfgBody), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	page := `<div class="matches-list">
		<div class="match-card">
			<h2>Ajax - AZ</h2>
			<div class="action-button-container"><span>Available</span><a href="/match/9">Tickets</a></div>
		</div>
		<div class="match-card"><h2>Ajax - PSV</h2></div>
	</div>`
	if err := os.WriteFile(htmlPath, []byte(page), 0o600); err != nil {
		t.Fatalf("write page: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"preview", "--config", cfgPath, "--html", htmlPath})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := out.String()
	for _, want := range []string{"Ajax", "AZ", "yes", "https://tickets.test/match/9", "card 2:"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

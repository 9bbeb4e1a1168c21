package chrome

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewProfileDir_IsUniquePerCall(t *testing.T) {
	root := t.TempDir()

	first, err := newProfileDir(root)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := newProfileDir(root)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct profile dirs, got %s twice", first)
	}
	for _, dir := range []string{first, second} {
		if filepath.Dir(dir) != root {
			t.Fatalf("expected %s under %s", dir, root)
		}
		if !strings.HasPrefix(filepath.Base(dir), "ajax-scraper-profile-") {
			t.Fatalf("unexpected profile dir name %s", dir)
		}
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat profile dir: %v", err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", dir)
		}
	}
}

func TestNewProvider_DefaultsWindowSize(t *testing.T) {
	p := NewProvider(nil, Options{})
	if p.opts.WindowWidth != 1920 || p.opts.WindowHeight != 1080 {
		t.Fatalf("unexpected window size %dx%d", p.opts.WindowWidth, p.opts.WindowHeight)
	}
	if p.opts.ActionTimeout != 30*time.Second || p.opts.NavigateTimeout != 60*time.Second {
		t.Fatalf("unexpected timeouts %s / %s", p.opts.ActionTimeout, p.opts.NavigateTimeout)
	}

	p = NewProvider(zap.NewNop(), Options{ExecPath: "/usr/bin/chromium", UserAgent: "ajax-scraper"})
	base := len(NewProvider(nil, Options{}).allocatorOptions("/tmp/profile"))
	if got := len(p.allocatorOptions("/tmp/profile")); got != base+2 {
		t.Fatalf("expected exec path and user agent options, got %d options (base %d)", got, base)
	}
}

func TestActionDeadline(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	if got := actionDeadline(context.Background(), 30*time.Second, now); !got.Equal(now.Add(30 * time.Second)) {
		t.Fatalf("expected timeout to bound a caller without deadline, got %s", got)
	}

	early, cancel := context.WithDeadline(context.Background(), now.Add(time.Second))
	defer cancel()
	if got := actionDeadline(early, 30*time.Second, now); !got.Equal(now.Add(time.Second)) {
		t.Fatalf("expected the earlier caller deadline, got %s", got)
	}

	late, cancelLate := context.WithDeadline(context.Background(), now.Add(time.Hour))
	defer cancelLate()
	if got := actionDeadline(late, 30*time.Second, now); !got.Equal(now.Add(30 * time.Second)) {
		t.Fatalf("expected the timeout over a later caller deadline, got %s", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := collapseSpace("\n\t Feyenoord\n   - Ajax  "); got != "Feyenoord - Ajax" {
		t.Fatalf("unexpected text %q", got)
	}
}

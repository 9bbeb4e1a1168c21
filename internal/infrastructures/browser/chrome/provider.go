package chrome

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
	"go.uber.org/zap"
)

const (
	defaultActionTimeout   = 30 * time.Second
	defaultNavigateTimeout = 60 * time.Second
)

type Options struct {
	ShowWindow   bool
	ExecPath     string
	ProfileRoot  string
	UserAgent    string
	WindowWidth  int
	WindowHeight int

	// ActionTimeout bounds every DOM call, NavigateTimeout every page load,
	// when the caller's context carries no earlier deadline.
	ActionTimeout   time.Duration
	NavigateTimeout time.Duration
}

// Provider launches a fresh Chrome process with its own profile directory
// for every session.
type Provider struct {
	log  *zap.Logger
	opts Options
}

func NewProvider(log *zap.Logger, opts Options) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.WindowWidth <= 0 {
		opts.WindowWidth = 1920
	}
	if opts.WindowHeight <= 0 {
		opts.WindowHeight = 1080
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = defaultActionTimeout
	}
	if opts.NavigateTimeout <= 0 {
		opts.NavigateTimeout = defaultNavigateTimeout
	}

	return &Provider{log: log, opts: opts}
}

func (p *Provider) Launch(ctx context.Context) (ports.Session, error) {
	const op = "chrome.Launch"

	profileDir, err := newProfileDir(p.opts.ProfileRoot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger := p.log.With(zap.String("op", op), zap.String("profile_dir", profileDir))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, p.allocatorOptions(profileDir)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar().Debugf),
		chromedp.WithErrorf(logger.Sugar().Warnf),
	)

	// The first Run starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		_ = os.RemoveAll(profileDir)
		return nil, fmt.Errorf("%s: start browser: %w", op, err)
	}

	logger.Debug("browser session started")

	return &Session{
		log:             logger,
		ctx:             browserCtx,
		profileDir:      profileDir,
		actionTimeout:   p.opts.ActionTimeout,
		navigateTimeout: p.opts.NavigateTimeout,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}, nil
}

func (p *Provider) allocatorOptions(profileDir string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !p.opts.ShowWindow),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserDataDir(profileDir),
		chromedp.WindowSize(p.opts.WindowWidth, p.opts.WindowHeight),
	)
	if p.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.opts.ExecPath))
	}
	if p.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(p.opts.UserAgent))
	}
	return opts
}

func newProfileDir(root string) (string, error) {
	if root == "" {
		root = os.TempDir()
	}

	dir := filepath.Join(root, "ajax-scraper-profile-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create profile dir: %w", err)
	}
	return dir, nil
}

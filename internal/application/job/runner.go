package job

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type State int32

const (
	StateRunning State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateDone:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Deps struct {
	Credentials ports.CredentialSource
	Browser     ports.SessionProvider
	Auth        ports.Authenticator
	Extractor   ports.CardExtractor
	Builder     ports.PayloadBuilder
	Notifier    ports.MatchNotifier

	// Lock is optional. When set, every attempt holds the lease for LockTTL.
	Lock    ports.JobLock
	LockTTL time.Duration
}

// Runner drives login, scrape and notify as one unit, retrying the whole
// sequence until it succeeds or ctx is cancelled.
type Runner struct {
	log     *zap.Logger
	deps    Deps
	siteURL string
	policy  RetryPolicy
	timer   backoff.Timer

	state   atomic.Int32
	attempt atomic.Int64
}

type Option func(*Runner)

// WithTimer replaces the timer used between attempts.
func WithTimer(t backoff.Timer) Option {
	return func(r *Runner) { r.timer = t }
}

func NewRunner(log *zap.Logger, deps Deps, siteURL string, policy RetryPolicy, opts ...Option) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		log:     log,
		deps:    deps,
		siteURL: siteURL,
		policy:  policy,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) State() State {
	return State(r.state.Load())
}

// Attempts reports how many attempts the last Run made.
func (r *Runner) Attempts() int {
	return int(r.attempt.Load())
}

func (r *Runner) Run(ctx context.Context) error {
	const op = "job.Run"

	b, err := r.policy.backOff()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.state.Store(int32(StateRunning))
	r.attempt.Store(0)

	attempt := func() error {
		n := r.attempt.Add(1)
		return r.runOnce(ctx, int(n))
	}
	notify := func(err error, next time.Duration) {
		r.log.Error("job attempt failed",
			zap.String("op", op),
			zap.Int64("attempt", r.attempt.Load()),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotifyWithTimer(attempt, backoff.WithContext(b, ctx), notify, r.timer); err != nil {
		r.log.Error("job gave up",
			zap.String("op", op),
			zap.Int64("attempts", r.attempt.Load()),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	r.state.Store(int32(StateDone))
	r.log.Info("job done", zap.String("op", op), zap.Int64("attempts", r.attempt.Load()))
	return nil
}

func (r *Runner) runOnce(ctx context.Context, attempt int) (err error) {
	const op = "job.runOnce"
	ctx, span := otel.Tracer("ajax-scraper/job").Start(ctx, op)
	span.SetAttributes(attribute.Int("job.attempt", attempt))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := r.log.With(zap.Int("attempt", attempt))

	if r.deps.Lock != nil {
		release, err := r.deps.Lock.Acquire(ctx, r.deps.LockTTL)
		if err != nil {
			return fmt.Errorf("%s: acquire lease: %w", op, err)
		}
		defer func() {
			if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
				log.Warn("failed to release job lease", zap.Error(rerr))
			}
		}()
	}

	cred, err := r.deps.Credentials.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	session, err := r.deps.Browser.Launch(ctx)
	if err != nil {
		return fmt.Errorf("%s: launch browser: %w", op, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn("failed to close browser session", zap.Error(cerr))
		}
	}()

	if err := session.Navigate(ctx, r.siteURL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.deps.Auth.Login(ctx, session, cred); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	records, itemErrs, err := r.deps.Extractor.Extract(ctx, session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, ie := range itemErrs {
		log.Warn("skipping match card", zap.Int("index", ie.Index), zap.Error(ie.Err))
	}

	payload, err := r.deps.Builder.Build(records)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.deps.Notifier.Notify(ctx, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("job.matches", len(payload.Matches)))
	log.Info("matches published", zap.Int("matches", len(payload.Matches)), zap.Int("skipped", len(itemErrs)))
	return nil
}

package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers a job on a cron spec. A tick that arrives while the
// previous run is still going is skipped.
type Scheduler struct {
	log  *zap.Logger
	cron *cron.Cron
}

func New(log *zap.Logger, location string) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}

	loc := time.Local
	if location != "" {
		l, err := time.LoadLocation(location)
		if err != nil {
			return nil, fmt.Errorf("load schedule location: %w", err)
		}
		loc = l
	}

	logger := cronLogger{log: log.Named("cron")}
	return &Scheduler{
		log: log,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}, nil
}

// Add registers fn under spec. fn receives the context passed to Run.
func (s *Scheduler) Add(ctx context.Context, spec string, fn func(context.Context)) error {
	if _, err := s.cron.AddFunc(spec, func() { fn(ctx) }); err != nil {
		return fmt.Errorf("add cron job %q: %w", spec, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for the
// running job to return.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info("job scheduled", zap.Time("next", e.Next))
	}

	<-ctx.Done()
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) fields(keysAndValues []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return fields
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, l.fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(l.fields(keysAndValues), zap.Error(err))...)
}

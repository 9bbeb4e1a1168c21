package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/domain/ports"
)

const (
	InteractiveWaitTimeout = 10 * time.Second
	defaultPollInterval    = 500 * time.Millisecond
)

// Waiter polls the DOM until a located element shows up.
type Waiter struct {
	Timeout  time.Duration
	Interval time.Duration
}

func NewWaiter(timeout, interval time.Duration) Waiter {
	if timeout <= 0 {
		timeout = InteractiveWaitTimeout
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return Waiter{Timeout: timeout, Interval: interval}
}

// WaitFor returns the first element matching loc, or an error wrapping
// derr.ErrWaitTimeout once the timeout has elapsed. Lookup failures other
// than "not found" are returned immediately.
func (w Waiter) WaitFor(ctx context.Context, finder ports.Finder, loc models.Locator) (ports.Element, error) {
	w = NewWaiter(w.Timeout, w.Interval)

	waitCtx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		el, err := finder.FindOne(waitCtx, loc)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, derr.ErrElementNotFound) && waitCtx.Err() == nil {
			return nil, err
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s after %s", derr.ErrWaitTimeout, loc, w.Timeout)
		case <-ticker.C:
		}
	}
}

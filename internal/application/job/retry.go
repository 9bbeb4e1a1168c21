package job

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	StrategyConstant    = "constant"
	StrategyExponential = "exponential"

	DefaultRetryDelay = 5 * time.Second
)

// RetryPolicy decides how long to wait between failed attempts. MaxRetries
// of zero retries forever.
type RetryPolicy struct {
	Strategy   string
	Delay      time.Duration
	MaxDelay   time.Duration
	MaxRetries uint64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Strategy: StrategyConstant, Delay: DefaultRetryDelay}
}

func (p RetryPolicy) backOff() (backoff.BackOff, error) {
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var b backoff.BackOff
	switch p.Strategy {
	case "", StrategyConstant:
		b = backoff.NewConstantBackOff(delay)
	case StrategyExponential:
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = delay
		if p.MaxDelay > 0 {
			exp.MaxInterval = p.MaxDelay
		}
		exp.MaxElapsedTime = 0
		exp.Reset()
		b = exp
	default:
		return nil, fmt.Errorf("unknown retry strategy %q", p.Strategy)
	}

	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.MaxRetries)
	}
	return b, nil
}

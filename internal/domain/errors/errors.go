package errors

import "errors"

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrElementNotFound    = errors.New("element not found")
	ErrWaitTimeout        = errors.New("timed out waiting for element")
	ErrContainerNotFound  = errors.New("card container not found")
	ErrMalformedFixture   = errors.New("malformed fixture")
	ErrJobLocked          = errors.New("job lease held by another runner")
	ErrNotifyTransport    = errors.New("match api unreachable")
)

package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow marks a malformed availability window. Offending input is
// rejected before anything is persisted, never clamped into shape.
var ErrInvalidWindow = errors.New("invalid availability window")

// ErrInvalidDate marks a date string that is not canonical "2006-01-02".
var ErrInvalidDate = errors.New("invalid date")

// ErrNotFound marks a referenced availability or slot that does not exist.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable marks a transient store failure. Re-running the failed
// call is safe: reconciliation is idempotent and status updates are
// conditional.
var ErrStoreUnavailable = errors.New("store unavailable")

var errNilDependency = errors.New("schedule service initialization error: one or more dependencies are nil")

// InvalidTransitionError reports an illegal slot status change. The slot's
// current status is left untouched.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid slot transition %s -> %s", e.From, e.To)
}

func invalidWindowf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidWindow, fmt.Sprintf(format, args...))
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

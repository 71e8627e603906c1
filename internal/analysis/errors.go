package analysis

import (
	"context"
	"errors"
	"fmt"

	"altlens/internal/roblox"
)

var (
	// ErrMissingInput means the username or credential was empty.
	ErrMissingInput = errors.New("missing username or api key")
	// ErrNotFound means the username resolved to no account.
	ErrNotFound = errors.New("user not found")
	// ErrUnexpected wraps any other failure that aborted a run.
	ErrUnexpected = errors.New("analysis failed")
)

// Error kinds reported by Classify.
const (
	KindMissingInput = "missing_input"
	KindNotFound     = "not_found"
	KindCanceled     = "canceled"
	KindUnexpected   = "unexpected"
)

// Classify maps err to one of the Kind constants. It returns "" for nil.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return KindMissingInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case roblox.IsContextError(err):
		return KindCanceled
	}
	return KindUnexpected
}

// unexpected wraps err in ErrUnexpected. A deadline or cancellation that did
// not come from ctx (a per-request timeout) is flattened so Classify does not
// report it as a canceled run.
func unexpected(ctx context.Context, err error) error {
	if errors.Is(err, ErrUnexpected) {
		return err
	}
	if roblox.IsContextError(err) && ctx.Err() == nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}

package roblox

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a username resolves to no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrInventoryPrivate is returned by inventory pagers when the account
	// hides its inventory. It is a state, not a failure.
	ErrInventoryPrivate = errors.New("inventory is private")

	// ErrPageFailed ends a pagination walk early; pages already returned
	// remain valid.
	ErrPageFailed = errors.New("page request failed")
)

// StatusError is a non-success HTTP status from the platform.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("roblox api %s status %d", e.Endpoint, e.Code)
}

// pageError wraps cause so that errors.Is(err, ErrPageFailed) holds while
// the cause stays reachable.
func pageError(page int, cause error) error {
	return fmt.Errorf("%w: page %d: %w", ErrPageFailed, page, cause)
}

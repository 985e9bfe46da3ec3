package store

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound        = errors.New("table session not found")
	ErrNoActiveSession        = errors.New("no active session")
	ErrActiveSessionExists    = errors.New("table already has an active session")
	ErrMultipleActiveSessions = errors.New("multiple active sessions for table")
	ErrOrderNotFound          = errors.New("order not found")
	ErrMenuItemNotFound       = errors.New("menu item not found")
	ErrMenuItemUnavailable    = errors.New("menu item not available")
	ErrBoardGameNotFound      = errors.New("board game not found")
)

// StatusConflictError reports a cancellation rejected because the order is no
// longer in a cancellable status. The current status is carried so the caller
// can report it.
type StatusConflictError struct {
	Status string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("cannot cancel order with status: %s", e.Status)
}

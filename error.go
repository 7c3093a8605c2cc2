package llist

import "fmt"

type ErrorCode int

const (
	Unknown = iota
	// CorruptedChain is used as a panic value when a structural invariant is
	// found violated, e.g. another goroutine's node was dropped while still
	// attached. It is not recoverable; the structure is not repaired.
	CorruptedChain
	TaskRetryExhausted
)

// Library custom error.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

func (e Error) Error() string {
	return fmt.Errorf("error code: %d, user data: %v, details: %w", e.Code, e.UserData, e.Err).Error()
}

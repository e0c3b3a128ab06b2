package domain

import (
	"errors"
	"fmt"
)

// Repositories signal absence with a nil entity, never with an error.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidField       = errors.New("invalid field")
)

// MissingFieldError reports a persisted record lacking a required column.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record: missing required field %q", e.Entity, e.Field)
}

// StorageUnavailableError wraps connectivity loss, pool exhaustion or a timeout.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("%s: storage unavailable: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

func (e *StorageUnavailableError) Is(target error) bool { return target == ErrStorageUnavailable }

package audit

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("audit: repository is required")
	ErrKindInvalid        = errors.New("audit: dispatch kind is invalid")
	ErrRetentionInvalid   = errors.New("audit: retention must be positive")
)

// NotFoundError reports a missing audit record.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("audit record %q not found", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrRecordNotFound }

var ErrRecordNotFound = errors.New("audit: record not found")

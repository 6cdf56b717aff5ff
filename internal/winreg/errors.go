package winreg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any registry call when the
	// caller passes a hive other than LocalMachine or CurrentUser.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("registry key or value not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrUnsupported     = errors.New("registry is not available on this platform")
)

// AccessDeniedError is returned by WriteString when the key cannot be opened
// for writing. It matches ErrAccessDenied with errors.Is.
type AccessDeniedError struct {
	Key string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("Key %s cannot be opened. Access denied.\nTry to re-run application with Administrator privileges.", e.Key)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

package errs

import "fmt"

// ValidationError covers malformed or missing input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthError covers a missing or invalid session, or an insufficient role.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }

func Auth(msg string) error { return &AuthError{Msg: msg} }

// ConfigurationError covers a missing server-side secret.
type ConfigurationError struct{ Msg string }

func (e *ConfigurationError) Error() string { return e.Msg }

func Configuration(msg string) error { return &ConfigurationError{Msg: msg} }

// PaymentError covers a provider rejection or an unreachable provider.
type PaymentError struct{ Msg string }

func (e *PaymentError) Error() string { return e.Msg }

func Payment(format string, args ...any) error {
	return &PaymentError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError covers an unknown id where the operation surfaces it at all.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

// StorageError wraps an I/O failure on a collection.
type StorageError struct {
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(collection string, err error) error {
	return &StorageError{Collection: collection, Err: err}
}

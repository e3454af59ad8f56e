package apperrors

import "fmt"

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message. Used by the repository layer so infrastructure failures carry
// enough context up to the handlers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause (may be nil).
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

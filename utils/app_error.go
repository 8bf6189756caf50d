package utils

// AppError is an operational error: expected, user-facing, safe to return
// with its message. Anything else is treated as a programming error and
// never leaks past the error middleware.
type AppError struct {
	Message    string
	StatusCode int
}

// NewAppError creates an operational error with an HTTP status code
func NewAppError(message string, statusCode int) *AppError {
	return &AppError{Message: message, StatusCode: statusCode}
}

func (e *AppError) Error() string {
	return e.Message
}

// Status returns "fail" for 4xx codes and "error" for everything else
func (e *AppError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return "fail"
	}
	return "error"
}

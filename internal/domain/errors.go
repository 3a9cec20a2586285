package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// NetworkError represents a daemon transport failure that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "submit", "dial", "read")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// NewFatalNetworkError creates a non-retriable network error
func NewFatalNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: false}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidDirection is returned for a direction other than long/short. Not retriable.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNotEligible is returned when submit is requested while the draft fails validation.
	ErrNotEligible = errors.New("order not eligible for submission")

	// ErrSubmissionInFlight is returned when a submit overlaps an in-flight request.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrNoConfirmation is returned when confirm/cancel arrives outside the dialog flow.
	ErrNoConfirmation = errors.New("no confirmation pending")

	// ErrDaemonRejected is returned when the daemon refuses an order. The form stays editable.
	ErrDaemonRejected = errors.New("daemon rejected order")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)

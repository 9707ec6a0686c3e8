package domain

import (
	"errors"
	"fmt"
)

// DomainError is a failure with a stable error code.
type DomainError struct {
	Code    string // Error code (e.g., "ZN-CONF-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += " (" + e.Cause.Error() + ")"
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError reports whether err is a DomainError with the given code.
// An empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Invocation errors. These are raised before any network exists.
var (
	// ErrConfigNotFound indicates the network config path does not exist.
	ErrConfigNotFound = NewDomainError("ZN-CONF-4040", "config file does not exist")

	// ErrConfigInvalid indicates the network config could not be parsed or validated.
	ErrConfigInvalid = NewDomainError("ZN-CONF-4000", "invalid network config")

	// ErrCredsNotFound indicates no credentials file could be resolved.
	ErrCredsNotFound = NewDomainError("ZN-CRED-4040", "can't find the creds file")

	// ErrUnknownProvider indicates a provider outside the allow-list.
	// The resolver treats it as "no override" and never returns it.
	ErrUnknownProvider = NewDomainError("ZN-PROV-4000", "unknown provider")

	// ErrMissingArgument indicates a required positional argument is missing.
	ErrMissingArgument = NewDomainError("ZN-ARG-4001", "missing required argument")
)

// Session errors.
var (
	// ErrSessionActive indicates a session is already registered.
	ErrSessionActive = NewDomainError("ZN-SESS-4090", "a network session is already active")
)

// Engine errors. These may happen once a network exists.
var (
	// ErrEngineStart indicates the orchestration engine failed to start a network.
	ErrEngineStart = NewDomainError("ZN-ENG-5000", "failed to start network")

	// ErrTeardown indicates stop or log upload failed during teardown.
	ErrTeardown = NewDomainError("ZN-ENG-5001", "network teardown failed")

	// ErrProviderUnsupported indicates the engine has no backend for a provider.
	ErrProviderUnsupported = NewDomainError("ZN-ENG-5002", "provider not supported by engine")

	// ErrTestFile indicates a test definition could not be read or parsed.
	ErrTestFile = NewDomainError("ZN-TEST-4000", "invalid test file")
)

// Process faults.
var (
	// ErrFatalFault wraps a panic that escaped the command flow.
	ErrFatalFault = NewDomainError("ZN-SYS-5000", "uncaught exception")

	// ErrUnhandledAsync wraps an error that escaped the command flow.
	ErrUnhandledAsync = NewDomainError("ZN-SYS-5001", "unhandled rejection")
)

// IsPreSession reports whether err is an invocation error raised before any
// network could have been started. Such errors are reported to the user and
// end the process without teardown.
func IsPreSession(err error) bool {
	return errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrCredsNotFound) ||
		errors.Is(err, ErrMissingArgument)
}

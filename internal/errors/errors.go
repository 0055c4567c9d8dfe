package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthLoginFailed    ErrorCode = "AUTH-001"
	ErrCodeAuthRefreshFailed  ErrorCode = "AUTH-002"
	ErrCodeAuthNotSignedIn    ErrorCode = "AUTH-003"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-004"
	ErrCodeAuthRoleUnknown    ErrorCode = "AUTH-005"
	ErrCodeAuthForbidden      ErrorCode = "AUTH-006"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPIUnreachable ErrorCode = "API-002"
	ErrCodeAPIDecode      ErrorCode = "API-003"
	ErrCodeAPIValidation  ErrorCode = "API-004"

	// Credential store errors (STORE-001 to STORE-099)
	ErrCodeStoreReadFailed  ErrorCode = "STORE-001"
	ErrCodeStoreWriteFailed ErrorCode = "STORE-002"
	ErrCodeStoreCorrupt     ErrorCode = "STORE-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFailed ErrorCode = "CONFIG-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
)

// WisalError represents an enhanced error with code, suggestions, and documentation
type WisalError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *WisalError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *WisalError) Unwrap() error {
	return e.Cause
}

// New creates a new WisalError
func New(code ErrorCode, message string) *WisalError {
	return &WisalError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new WisalError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *WisalError {
	return &WisalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *WisalError) WithSuggestion(suggestion string) *WisalError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *WisalError) WithSuggestions(suggestions ...string) *WisalError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *WisalError) WithDocs(url string) *WisalError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotSignedInError creates an error for commands that require a session
func NewNotSignedInError() *WisalError {
	return New(ErrCodeAuthNotSignedIn, "not signed in").
		WithSuggestion("Run 'wisal login' to sign in with your institution account").
		WithSuggestion("Check 'wisal status' to inspect the stored session").
		WithDocs("https://github.com/wisalhq/wisal-admin#authentication")
}

// NewLoginFailedError creates a login failure error
func NewLoginFailedError(cause error) *WisalError {
	return Wrap(ErrCodeAuthLoginFailed, "authentication failed", cause).
		WithSuggestion("Verify your email and password").
		WithSuggestion("Contact your institution administrator if the account is locked").
		WithDocs("https://github.com/wisalhq/wisal-admin#authentication")
}

// NewSessionExpiredError creates an expired session error
func NewSessionExpiredError() *WisalError {
	return New(ErrCodeAuthSessionExpired, "session expired").
		WithSuggestion("Run 'wisal login' to sign in again").
		WithDocs("https://github.com/wisalhq/wisal-admin#authentication")
}

// NewRoleUnknownError creates an error for a role outside the known set
func NewRoleUnknownError(role string) *WisalError {
	return New(ErrCodeAuthRoleUnknown, fmt.Sprintf("unknown role: %s", role)).
		WithSuggestion("Expected one of: ADMIN, DISTRIBUTER, PUBLISHER, DELIVERER").
		WithSuggestion("Run 'wisal logout' and sign in again to refresh the stored session").
		WithDocs("https://github.com/wisalhq/wisal-admin#roles")
}

// NewForbiddenError creates an error for actions the signed-in role may not perform
func NewForbiddenError(action string, role string) *WisalError {
	return New(ErrCodeAuthForbidden, fmt.Sprintf("role %s may not %s", role, action)).
		WithSuggestion("Switch to an account with the required role").
		WithDocs("https://github.com/wisalhq/wisal-admin#roles")
}

// NewServerUnreachableError creates an error for transport-level failures
func NewServerUnreachableError(baseURL string, cause error) *WisalError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("server unreachable: %s", baseURL), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API base URL with 'wisal config show'").
		WithDocs("https://github.com/wisalhq/wisal-admin#configuration")
}

// NewStoreCorruptError creates an error for an unreadable session file
func NewStoreCorruptError(path string, cause error) *WisalError {
	return Wrap(ErrCodeStoreCorrupt, fmt.Sprintf("session store unreadable: %s", path), cause).
		WithSuggestion("Run 'wisal logout' to reset the stored session").
		WithSuggestion("Remove the file manually if logout fails")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *WisalError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid config: %s", details)).
		WithSuggestion("Run 'wisal config show' to inspect the effective configuration").
		WithSuggestion("Run 'wisal config init' to regenerate the default config file").
		WithDocs("https://github.com/wisalhq/wisal-admin#configuration")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *WisalError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

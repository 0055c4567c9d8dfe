package exitcode

import (
	"os"
	"strings"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (bad or expired credentials)
	AuthError = 3

	// RoleDenied indicates the signed-in role is not permitted to perform the action
	RoleDenied = 4

	// NetworkError indicates the dashboard API could not be reached
	NetworkError = 5

	// ConfigError indicates invalid or unreadable configuration
	ConfigError = 6

	// Interrupted indicates the run was cancelled by the user (Ctrl+C)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "authentication") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}
	if strings.Contains(errMsg, "status 401") || strings.Contains(errMsg, "credentials") {
		return AuthError
	}
	if strings.Contains(errMsg, "not signed in") || strings.Contains(errMsg, "session expired") {
		return AuthError
	}

	// Role denials
	if strings.Contains(errMsg, "forbidden") || strings.Contains(errMsg, "status 403") {
		return RoleDenied
	}
	if strings.Contains(errMsg, "permission denied") || strings.Contains(errMsg, "role") {
		return RoleDenied
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "no such host") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	// Configuration errors
	if strings.Contains(errMsg, "config") {
		return ConfigError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case RoleDenied:
		return "Role not permitted"
	case NetworkError:
		return "Network error"
	case ConfigError:
		return "Configuration error"
	case Interrupted:
		return "Cancelled by user"
	default:
		return "Unknown error"
	}
}

package api

import (
	"encoding/json"
	"fmt"
)

// Fallback messages shown to the user when the server supplies no usable
// error body. The dashboard is Arabic-first, so these are Arabic.
const (
	// GenericErrorMessage is used for error responses whose body carries
	// no message, error, or title field.
	GenericErrorMessage = "حدث خطأ ما، يرجى المحاولة مرة أخرى"

	// ServerUnreachableMessage is used when no response arrived at all.
	ServerUnreachableMessage = "تعذر الوصول إلى الخادم، تحقق من اتصالك بالإنترنت"
)

// Error is the uniform error shape for every failed API call.
// Status is 0 when no response arrived (transport failure). Message is the
// user-facing text extracted from the response body, or a fixed fallback.
// Payload keeps the raw server body for callers that need detail.
type Error struct {
	Status  int
	Message string
	Payload json.RawMessage
	Cause   error
}

// Error implements the error interface with an operator-facing string.
// The user-facing text stays in Message.
func (e *Error) Error() string {
	if e.Status == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("server unreachable: %v", e.Cause)
		}
		return "server unreachable"
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Message)
}

// Unwrap exposes the transport cause for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// messageFromBody extracts a human-readable message from an error body.
// The first of message, error, title that holds a non-empty string wins;
// non-string values are skipped. Falls back to the generic message.
func messageFromBody(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "error", "title"} {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
		}
	}
	return GenericErrorMessage
}

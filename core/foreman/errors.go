package foreman

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the Foreman API.
// Message carries the remote system's human-readable error text verbatim;
// callers relay it without interpreting error codes.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Message is the error text extracted from the response body.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("foreman: %s (status %d)", e.Message, e.StatusCode)
}

// errorEnvelope matches Foreman's error response body. Depending on the
// failure, the message lives in "message" or in "full_messages".
type errorEnvelope struct {
	Error struct {
		Message      string   `json:"message"`
		FullMessages []string `json:"full_messages"`
	} `json:"error"`
}

// newAPIError decodes a Foreman error body into an APIError.
// Falls back to the HTTP status text when the body is not the expected shape.
func newAPIError(statusCode int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return &APIError{StatusCode: statusCode, Message: envelope.Error.Message}
		}
		if len(envelope.Error.FullMessages) > 0 {
			return &APIError{
				StatusCode: statusCode,
				Message:    strings.Join(envelope.Error.FullMessages, "; "),
			}
		}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

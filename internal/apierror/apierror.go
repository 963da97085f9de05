// Package apierror defines the JSON error envelope every handler returns.
// Internal details (driver errors, stack traces) never reach the client;
// handlers translate domain errors into one of these before responding.
package apierror

// APIError is the canonical body for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

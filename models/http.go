package models

import "time"

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// StatusCode repeats the HTTP status code.
	StatusCode int `json:"statusCode"`

	// ErrorCode is a stable, machine-readable code such as
	// TRANSFER_CANNOT_BE_MODIFIED. Clients branch on it, not on Message.
	ErrorCode string `json:"errorCode"`

	// Message is a human-readable description.
	Message string `json:"message"`

	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}

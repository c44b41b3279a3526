package github

import (
	"errors"
	"fmt"
)

// ErrRepositoryNotFound is returned when the repository root listing answers 404.
//
// This typically occurs when:
//   - The owner or repository name is misspelled
//   - The repository is private
//   - The repository was deleted or renamed
var ErrRepositoryNotFound = errors.New("repository not found")

// StatusError is returned when the root listing answers with a non-success
// status other than 404, including rate limiting (403/429).
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the "message" field of the error body, if any.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API error: %d: %s", e.StatusCode, e.Message)
}

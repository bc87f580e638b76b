package canvas

import "fmt"

// StatusError is returned when the API answers with a non-success status.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d for %s", e.StatusCode, e.Path)
}

package engine

import "fmt"

// SearchTransportError reports a network failure or a non-2xx status from
// the search endpoint. Error returns the underlying message unchanged so it
// can be shown to users as is.
type SearchTransportError struct {
	Status int
	Err    error
}

func (e *SearchTransportError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("search endpoint returned status %d", e.Status)
}

func (e *SearchTransportError) Unwrap() error { return e.Err }

// CompletionError wraps any failure of the completion API.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion (%s): %v", e.Model, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

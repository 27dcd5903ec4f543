package translator

import (
	"errors"
	"fmt"
)

// shown in the output pane when the translate request itself fails
const FailureMarker = "# Error: failed to generate Python code."

var (
	ErrValidation       = errors.New("please enter a description of the Python code you want")
	ErrStreamInProgress = errors.New("a translation is already streaming")
)

// the translate request failed before or while the body was read
type TransportError struct {
	StatusCode int    // zero when no response arrived
	Message    string // server supplied message, if any
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("translate request failed with status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("translate request failed with status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("translate request failed: %v", e.Err)
	default:
		return "translate request failed"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// the stream carried an error frame; Message is shown to the user verbatim
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// a history call failed; the displayed translation is never rolled back
type PersistenceError struct {
	Op  string // save, load or delete
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s conversation history: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// a non-2xx answer from one of the history endpoints
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}
